package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpperCamelCase(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{"my cool thing", "MyCoolThing"},
		{"foo_bar-baz", "FooBarBaz"},
		{"  leading  and__trailing--", "LeadingAndTrailing"},
		{"mIXed CASE", "MixedCase"},
		{"", ""},
		{42, "42"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, upperCamelCase(tc.in))
	}
}

func TestDots(t *testing.T) {
	assert.Equal(t, "a.b.c", dots("a_b c"))
	assert.Equal(t, "my.cool.thing", dots("my_cool thing"))
	assert.Equal(t, "a..b", dots("a _b"))
	assert.Equal(t, "no-change", dots("no-change"))
}

func TestUnderscore(t *testing.T) {
	assert.Equal(t, "my_cool_thing", underscore("My Cool-Thing"))
	assert.Equal(t, "a_b", underscore("a \t- b"))
	assert.Equal(t, "keep_underscores", underscore("Keep_Underscores"))
	assert.Equal(t, "true", underscore(true))
}

func TestFiltersInTemplate(t *testing.T) {
	engine := NewDefaultEngine()
	actual, err := engine.RenderText(
		`{{ .name | upper_camel_case }} {{ .name | dots }} {{ .name | underscore }}`,
		map[string]any{"name": "My cool_thing"})
	assert.NoError(t, err)
	assert.Equal(t, "MyCoolThing My.cool.thing my_cool_thing", actual)
}

func TestResolved(t *testing.T) {
	assert.True(t, resolved())
	assert.True(t, resolved("", 0, false))
	assert.False(t, resolved("a", nil))

	engine := NewDefaultEngine()
	actual, err := engine.RenderText(`{{ if resolved .a .b }}yes{{ else }}no{{ end }}`,
		map[string]any{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, "no", actual)
}
