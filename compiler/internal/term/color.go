package term

import (
	"os"

	"github.com/xyproto/env/v2"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

var colorOn = env.Str("NO_COLOR") == "" && isTerminal(int(os.Stderr.Fd()))

// ColorEnabled reports whether stderr output is coloured.
func ColorEnabled() bool { return colorOn }

// SetColor forces colour on or off.
func SetColor(on bool) { colorOn = on }

func paint(code, s string) string {
	if !colorOn {
		return s
	}
	return code + s + ansiReset
}

func Bold(s string) string   { return paint(ansiBold, s) }
func Red(s string) string    { return paint(ansiBold+ansiRed, s) }
func Green(s string) string  { return paint(ansiGreen, s) }
func Yellow(s string) string { return paint(ansiYellow, s) }
func Dim(s string) string    { return paint(ansiDim, s) }
