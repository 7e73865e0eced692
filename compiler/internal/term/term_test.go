package term

import (
	"bytes"
	"strings"
	"testing"
)

func TestPaint(t *testing.T) {
	prev := ColorEnabled()
	defer SetColor(prev)

	SetColor(false)
	if got := Red("error"); got != "error" {
		t.Fatalf("colour off should leave text alone, got %q", got)
	}
	SetColor(true)
	got := Red("error")
	if !strings.HasPrefix(got, "\x1b[") || !strings.HasSuffix(got, ansiReset) || !strings.Contains(got, "error") {
		t.Fatalf("unexpected coloured text %q", got)
	}
}

func TestWriters(t *testing.T) {
	var b strings.Builder
	Bprintf(&b, "%d:%d", 1, 2)
	if b.String() != "1:2" {
		t.Fatalf("Bprintf wrote %q", b.String())
	}
	var buf bytes.Buffer
	Wprintf(&buf, "%s!", "hi")
	if buf.String() != "hi!" {
		t.Fatalf("Wprintf wrote %q", buf.String())
	}
}
