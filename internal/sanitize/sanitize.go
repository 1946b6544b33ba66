// Package sanitize provides HTML sanitization for catalog text.
// Uses bluemonday to strip dangerous HTML (script tags, event handlers,
// javascript: URLs) from object info and event descriptions while keeping
// the light formatting the popups render.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for catalog HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Popup text uses inline spans and paragraphs with colour styling.
		policy.AllowAttrs("style").OnElements("span", "p")
		policy.AllowAttrs("class").Globally()
	})
	return policy
}

// HTML sanitizes catalog-provided HTML content by stripping dangerous
// elements (script, iframe, event handlers, javascript: URLs) while
// preserving safe formatting tags.
//
// The loader calls this on every info and description field, so the
// output is safe to write into popup fragments unescaped.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}
