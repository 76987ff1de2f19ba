package util

import "github.com/mgutz/ansi"

// boldStyle wraps text into the terminal bold escape sequence.
var boldStyle = ansi.ColorFunc("default+b")

// Bold highlights section headers of the usage text.
func Bold(s string) string {
	return boldStyle(s)
}
