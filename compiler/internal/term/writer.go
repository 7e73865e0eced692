package term

import (
	"fmt"
	"io"
)

// Wprintf is Printf to w. Command output goes through it so tests can
// capture what stdout would show.
func Wprintf(w io.Writer, format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }
