package prepare

import (
	"bytes"
	"fmt"
	"strings"
)

// Page geometry for plain text, in PostScript points on US Letter.
const (
	fontSize   = 12
	leading    = 14
	marginLeft = 72
	topY       = 720
	bottomY    = 72
)

// TextPostScript renders text as Courier lines, starting a new page when
// the bottom margin is reached.
func TextPostScript(text string) []byte {
	var b bytes.Buffer
	b.WriteString("%!PS-Adobe-3.0\n")
	fmt.Fprintf(&b, "/Courier findfont %d scalefont setfont\n", fontSize)

	y := topY
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if y < bottomY {
			b.WriteString("showpage\n")
			fmt.Fprintf(&b, "/Courier findfont %d scalefont setfont\n", fontSize)
			y = topY
		}
		fmt.Fprintf(&b, "%d %d moveto\n(%s) show\n", marginLeft, y, EscapeString(line))
		y -= leading
	}
	b.WriteString("showpage\n")
	return b.Bytes()
}

// EscapeString quotes s for use inside a PostScript string literal.
func EscapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\t':
			b.WriteString("    ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
