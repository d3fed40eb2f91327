// Package sanitize escapes untrusted values before they are interpolated
// into HTML.
package sanitize

import (
	"fmt"
	"html/template"
	"strings"
)

// Replacements happen in a single left-to-right pass, so the '&' of an entity
// produced here is never escaped again.
var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape converts v to a string (nil becomes "null") and replaces
// & < > " ' with character references. It never fails.
func Escape(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case nil:
		s = "null"
	default:
		s = fmt.Sprint(t)
	}
	return replacer.Replace(s)
}

// HTML is Escape typed for html/template, which would otherwise escape the
// entities a second time.
func HTML(v any) template.HTML {
	return template.HTML(Escape(v))
}
