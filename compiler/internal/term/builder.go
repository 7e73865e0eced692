package term

import (
	"fmt"
	"strings"
)

// Bprintf appends formatted text to b. Writes to a strings.Builder cannot
// fail, so the result is dropped.
func Bprintf(b *strings.Builder, format string, a ...any) { _, _ = fmt.Fprintf(b, format, a...) }
