// Package render substitutes {{name}} placeholders into page templates.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"pawstails/internal/storage"
)

// Context maps placeholder names to their values for one render call.
type Context map[string]string

var placeholderRe = regexp.MustCompile(`\{\{[^}]+\}\}`)

// TemplateReadError reports a template that could not be loaded.
type TemplateReadError struct {
	Path string
	Err  error
}

func (e *TemplateReadError) Error() string {
	return fmt.Sprintf("read template %s: %v", e.Path, e.Err)
}

func (e *TemplateReadError) Unwrap() error { return e.Err }

// Render replaces every {{key}} naming a key of data with its value, then
// drops any placeholder left unresolved. It never fails.
func Render(tmpl string, data Context) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := tmpl
	for _, k := range keys {
		out = strings.ReplaceAll(out, "{{"+k+"}}", data[k])
	}
	return placeholderRe.ReplaceAllString(out, "")
}

// Renderer loads templates from a blob store.
type Renderer struct {
	blob storage.BlobStore
}

func NewRenderer(blob storage.BlobStore) *Renderer {
	return &Renderer{blob: blob}
}

// RenderFromPath reads the template at path and renders it with data.
func (r *Renderer) RenderFromPath(path string, data Context) (string, error) {
	raw, err := r.blob.ReadFile(path)
	if err != nil {
		return "", &TemplateReadError{Path: path, Err: err}
	}
	return Render(string(raw), data), nil
}

// Exists reports whether a template is present at path.
func (r *Renderer) Exists(path string) bool {
	ok, err := r.blob.Exists(path)
	return err == nil && ok
}
