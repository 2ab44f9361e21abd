// Package content holds the pure string pipeline applied to article input:
// validation, sanitizing, excerpts and slugs.
package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"pawstails/internal/models"
)

const (
	MinTitleLength   = 3
	MaxTitleLength   = 200
	MinContentLength = 10
)

var tagRe = regexp.MustCompile(`(?i)<(/?)([a-z][a-z0-9]*)\b[^>]*>`)

// Void elements never take part in balance checks.
var voidTags = map[string]struct{}{
	"img": {}, "br": {}, "hr": {}, "input": {}, "meta": {}, "link": {}, "area": {},
	"base": {}, "col": {}, "embed": {}, "source": {}, "track": {}, "wbr": {},
}

// Elements whose end tag may be omitted.
var optionalCloseTags = map[string]struct{}{
	"p": {}, "li": {}, "td": {}, "th": {}, "tr": {}, "dt": {}, "dd": {},
}

func isVoid(tag string) bool {
	_, ok := voidTags[tag]
	return ok
}

func isOptionalClose(tag string) bool {
	_, ok := optionalCloseTags[tag]
	return ok
}

// Validate checks the title and HTML body of an article and returns every
// violation it finds, in order.
func Validate(title, body string) models.ValidationResult {
	errs := make([]string, 0)

	// minimums apply to the trimmed title, the maximum to the raw one
	t := strings.TrimSpace(title)
	switch n := utf8.RuneCountInString(t); {
	case n == 0:
		errs = append(errs, "Title is required")
	case n < MinTitleLength:
		errs = append(errs, fmt.Sprintf("Title must be at least %d characters", MinTitleLength))
	case utf8.RuneCountInString(title) > MaxTitleLength:
		errs = append(errs, fmt.Sprintf("Title must be less than %d characters", MaxTitleLength))
	}

	b := strings.TrimSpace(body)
	switch n := utf8.RuneCountInString(b); {
	case n == 0:
		errs = append(errs, "Content is required")
	case n < MinContentLength:
		errs = append(errs, fmt.Sprintf("Content must be at least %d characters", MinContentLength))
	}

	if body != "" {
		errs = append(errs, ValidateTags(body)...)
	}

	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateTags scans html for open and close markers and reports balance
// problems. The optional-close heuristic is deliberately loose: a mismatched
// close pops one optional element and retries once, without reporting.
func ValidateTags(html string) []string {
	var errs []string
	var stack []string

	for _, m := range tagRe.FindAllStringSubmatch(html, -1) {
		raw, closing, tag := m[0], m[1] == "/", strings.ToLower(m[2])
		if isVoid(tag) {
			continue
		}

		if !closing {
			if strings.HasSuffix(raw, "/>") {
				continue
			}
			// A new <p> or <li> closes the open sibling of the same kind.
			if n := len(stack); n > 0 && stack[n-1] == tag && isOptionalClose(tag) {
				stack = stack[:n-1]
			}
			stack = append(stack, tag)
			continue
		}

		n := len(stack)
		switch {
		case n == 0:
			errs = append(errs, fmt.Sprintf("Unexpected closing tag: </%s>", tag))
		case stack[n-1] == tag:
			stack = stack[:n-1]
		case isOptionalClose(stack[n-1]):
			stack = stack[:n-1]
			if n-1 > 0 && stack[n-2] == tag {
				stack = stack[:n-2]
			}
		default:
			errs = append(errs, fmt.Sprintf("Tag mismatch: expected </%s>, found </%s>", stack[n-1], tag))
		}
	}

	var unclosed []string
	for _, tag := range stack {
		if !isOptionalClose(tag) {
			unclosed = append(unclosed, tag)
		}
	}
	if len(unclosed) > 0 {
		errs = append(errs, "Unclosed tags: "+strings.Join(unclosed, ", "))
	}
	return errs
}
