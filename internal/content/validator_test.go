package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = "<p>Puppies need a warm bed.</p>"

func TestValidate_TitleLength(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", "Title is required"},
		{"whitespace", "   ", "Title is required"},
		{"one rune", "a", "Title must be at least 3 characters"},
		{"two runes", "ab", "Title must be at least 3 characters"},
		{"padded short", "  ab  ", "Title must be at least 3 characters"},
		{"too long", strings.Repeat("x", 201), "Title must be less than 200 characters"},
		{"far too long", strings.Repeat("y", 500), "Title must be less than 200 characters"},
		{"padded past limit", "  " + strings.Repeat("w", 199) + "  ", "Title must be less than 200 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.title, okBody)
			assert.False(t, res.Valid)
			assert.Contains(t, res.Errors, tc.want)
		})
	}
}

func TestValidate_TitleBoundaries(t *testing.T) {
	for _, title := range []string{"abc", strings.Repeat("z", 200), "Щен"} {
		res := Validate(title, okBody)
		assert.True(t, res.Valid, "title %q: %v", title, res.Errors)
		assert.Empty(t, res.Errors)
	}
}

func TestValidate_Content(t *testing.T) {
	res := Validate("Feeding puppies", "")
	assert.Equal(t, []string{"Content is required"}, res.Errors)

	res = Validate("Feeding puppies", "  short  ")
	assert.Equal(t, []string{"Content must be at least 10 characters"}, res.Errors)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	res := Validate("x", "<div>ok")
	require.False(t, res.Valid)
	assert.Equal(t, []string{
		"Title must be at least 3 characters",
		"Content must be at least 10 characters",
		"Unclosed tags: div",
	}, res.Errors)
}

func TestValidateTags_Balanced(t *testing.T) {
	for _, html := range []string{
		"<div><p>hi</p></div>",
		`<p>Photo <img src="a.png"> and a<br>break</p>`,
		"<ul><li>one<li>two</ul>",
		"<table><tr><td>a<td>b</tr></table>",
		"<p>first<p>second",
		"<dl><dt>term</dt><dd>definition</dd></dl>",
		"<section><custom-el/>text</section>",
		"<DIV>upper</div>",
	} {
		assert.Empty(t, ValidateTags(html), html)
	}
}

func TestValidateTags_ParagraphClosedByParent(t *testing.T) {
	// The optional-close rule lets </div> implicitly end the open <p>.
	assert.Empty(t, ValidateTags("<div><p>hi</div>"))
}

func TestValidateTags_Mismatch(t *testing.T) {
	errs := ValidateTags("<div><span>hi</div>")
	assert.Equal(t, []string{
		"Tag mismatch: expected </span>, found </div>",
		"Unclosed tags: div, span",
	}, errs)
}

func TestValidateTags_UnexpectedClose(t *testing.T) {
	errs := ValidateTags("text</em>")
	assert.Equal(t, []string{"Unexpected closing tag: </em>"}, errs)
}

func TestValidateTags_Unclosed(t *testing.T) {
	errs := ValidateTags("<article><section><p>body")
	assert.Equal(t, []string{"Unclosed tags: article, section"}, errs)
}

func TestValidateTags_OptionalRetryOnlyOnce(t *testing.T) {
	// </div> pops the open <li>, the retry sees <ul> and stops silently.
	errs := ValidateTags("<div><ul><li>a</div>")
	assert.Equal(t, []string{"Unclosed tags: div, ul"}, errs)
}

func TestValidate_UnbalancedMarkupRejected(t *testing.T) {
	res := Validate("Grooming basics", "<div><span>Brush daily</div>")
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	assert.True(t, strings.HasPrefix(res.Errors[0], "Tag mismatch"))
}
