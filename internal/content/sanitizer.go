package content

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const DefaultExcerptLength = 160

var (
	scriptElementRe = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	scriptTagRe     = regexp.MustCompile(`(?i)</?script\b[^>]*>`)

	// An opening tag; quoted attribute values may contain '>'.
	openTagRe = regexp.MustCompile(`(?i)<([a-z][a-z0-9]*)((?:"[^"]*"|'[^']*'|[^'">])*)>`)
	attrRe    = regexp.MustCompile(`(?i)([\s/]*)([a-z_:][-a-z0-9_:.]*)(\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'>]+))?`)

	allTagsRe     = regexp.MustCompile(`<[^>]*>`)
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphensRe     = regexp.MustCompile(`-+`)
	safeDataURIRe = regexp.MustCompile(`^data:image/(png|jpg|jpeg|gif|webp|svg\+xml)[;,]`)
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Sanitizer strips script elements, event handlers and unsafe URIs from
// article HTML. The zero value is ready to use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer that, when policy is non-nil, runs the
// bluemonday policy after the built-in passes.
func NewSanitizer(policy *bluemonday.Policy) *Sanitizer {
	return &Sanitizer{policy: policy}
}

// PolicyByName maps the CONTENT_POLICY setting to a bluemonday policy.
func PolicyByName(name string) *bluemonday.Policy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ugc":
		p := bluemonday.UGCPolicy()
		p.AllowElements("img", "iframe")
		p.AllowAttrs("src", "alt").OnElements("img")
		p.AllowAttrs("src", "width", "height", "allowfullscreen").OnElements("iframe")
		return p
	case "strict":
		return bluemonday.StrictPolicy()
	default:
		return nil
	}
}

// Sanitize applies, in order: script removal, event handler removal,
// javascript: neutralization in href/src and data: neutralization in src.
func (s *Sanitizer) Sanitize(html string) string {
	if html == "" {
		return ""
	}
	out := stripScripts(html)
	out = openTagRe.ReplaceAllStringFunc(out, sanitizeTag)
	if s != nil && s.policy != nil {
		out = s.policy.Sanitize(out)
	}
	return out
}

// stripScripts repeats script removal until nothing changes, since removing
// one tag can splice its neighbours into a new one.
func stripScripts(html string) string {
	for {
		next := scriptElementRe.ReplaceAllString(html, "")
		next = scriptTagRe.ReplaceAllString(next, "")
		if next == html {
			return next
		}
		html = next
	}
}

func sanitizeTag(tag string) string {
	m := openTagRe.FindStringSubmatch(tag)
	if m == nil || m[2] == "" {
		return tag
	}
	attrs := attrRe.ReplaceAllStringFunc(m[2], sanitizeAttr)
	return "<" + m[1] + attrs + ">"
}

func sanitizeAttr(attr string) string {
	m := attrRe.FindStringSubmatch(attr)
	if m == nil {
		return attr
	}
	sep, name, assign := m[1], strings.ToLower(m[2]), m[3]

	if len(name) > 2 && strings.HasPrefix(name, "on") {
		return ""
	}
	if assign == "" || (name != "href" && name != "src") {
		return attr
	}

	value := attrValue(assign)
	switch {
	case strings.HasPrefix(value, "javascript:"):
		return sep + m[2] + `="#"`
	case name == "src" && strings.HasPrefix(value, "data:") && !safeDataURIRe.MatchString(value):
		return sep + m[2] + `="#"`
	}
	return attr
}

// attrValue extracts a normalized (unquoted, lowercased, whitespace-free)
// attribute value from an "= value" suffix.
func attrValue(assign string) string {
	v := strings.TrimSpace(assign)
	v = strings.TrimSpace(strings.TrimPrefix(v, "="))
	v = strings.Trim(v, `"'`)
	v = strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, v)
	return strings.ToLower(v)
}

// EscapeHTML escapes & < > " and ' for safe display.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// StripTags removes every tag and keeps the text between them.
func StripTags(html string) string {
	return allTagsRe.ReplaceAllString(html, "")
}

// CreateExcerpt returns the plain text of html, truncated to maxLength runes
// with a trailing ellipsis when it does not fit.
func CreateExcerpt(html string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	text := StripTags(html)
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	cut := maxLength - 3
	if cut < 0 {
		cut = 0
	}
	return strings.TrimSpace(string([]rune(text)[:cut])) + "..."
}

// SanitizeSlug forces a caller-supplied slug into [a-z0-9-].
func SanitizeSlug(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = slugInvalidRe.ReplaceAllString(s, "-")
	s = hyphensRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
