package convert

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// SanitizeHTML strips all markup from string values, leaving text content
// only. Non-string values pass through unchanged so the converter can sit on
// fields that sometimes carry non-text data. Useful as a loads converter on
// fields ingesting untrusted display text.
func SanitizeHTML(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	cleaned := strings.TrimSpace(htmlSanitizer().Sanitize(s))
	return cleaned, nil
}

func htmlSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
