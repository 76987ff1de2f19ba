package engines

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

var (
	// wordSeparatorRe matches runs of characters splitting words for upper_camel_case.
	wordSeparatorRe = regexp.MustCompile(`[\s_-]+`)
	// underscoreRe matches runs of characters replaced by underscore filter.
	underscoreRe = regexp.MustCompile(`[\s-]+`)

	dotsReplacer = strings.NewReplacer(" ", ".", "_", ".")
)

// builtinFuncs are the filters available in every template.
var builtinFuncs = template.FuncMap{
	"upper_camel_case": upperCamelCase,
	"dots":             dots,
	"underscore":       underscore,
	resolvedFunc:       resolved,
}

// capitalize upper-cases the first letter of word and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return ""
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(word[size:])
}

// upperCamelCase converts "my cool-thing" to "MyCoolThing".
func upperCamelCase(value any) string {
	var builder strings.Builder
	for _, word := range wordSeparatorRe.Split(fmt.Sprint(value), -1) {
		builder.WriteString(capitalize(word))
	}
	return builder.String()
}

// dots converts "my_cool thing" to "my.cool.thing".
func dots(value any) string {
	return dotsReplacer.Replace(fmt.Sprint(value))
}

// underscore converts "My Cool-Thing" to "my_cool_thing".
func underscore(value any) string {
	return strings.ToLower(underscoreRe.ReplaceAllString(fmt.Sprint(value), "_"))
}
