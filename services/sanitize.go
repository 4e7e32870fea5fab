package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Customer-supplied free text (notes, cancellation reasons) ends up in admin
// views and notification payloads, so it is stripped of any markup on write.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips HTML and trims surrounding whitespace
func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// sanitizeTextPtr sanitizes optional text, collapsing empty results to nil
func sanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeText(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
