// Package htmlsanitize cleans user-supplied text before it enters the
// client state.
//
// Rich fields (a tutor's bio) keep a safe subset of HTML. Everything else
// (contact form, feedback comments, names) is reduced to plain text.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richOnce sync.Once
	rich     *bluemonday.Policy

	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func richPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("table", "th", "td")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		rich = p
	})
	return rich
}

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Sanitize removes scripts, event handlers, unsafe URLs and anything else
// outside the user-content allowlist.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richPolicy().Sanitize(s)
}

// Plain strips all markup and returns the remaining text with entities
// decoded. The result is text, and must be rendered as text.
func Plain(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strictPolicy().Sanitize(s))
}

// IsPlainText reports whether s contains nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
