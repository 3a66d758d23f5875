// Package dump formats transferred bytes for console transcripts.
package dump

import (
	"fmt"
	"strings"
)

// Direction tags used in transcripts.
const (
	Read  = "R"
	Write = "W"
)

// Transfer formats p as "R(7Byte) 48h 65h ...".
func Transfer(dir string, p []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%dByte)", dir, len(p))
	for _, b := range p {
		fmt.Fprintf(&sb, " %02Xh", b)
	}
	return sb.String()
}

// Inline formats p as "R48 R65 ..." with the direction tag on every byte.
func Inline(dir string, p []byte) string {
	items := make([]string, len(p))
	for n, b := range p {
		items[n] = fmt.Sprintf("%s%02X", dir, b)
	}
	return strings.Join(items, " ")
}
