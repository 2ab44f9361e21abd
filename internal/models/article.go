package models

import "time"

type Article struct {
	ID              int64      `db:"id"               json:"id"`
	Title           string     `db:"title"            json:"title"`
	Slug            string     `db:"slug"             json:"slug"`
	Content         string     `db:"content"          json:"content"`
	Excerpt         string     `db:"excerpt"          json:"excerpt"`
	ImageURL        string     `db:"image_url"        json:"image_url"`
	Author          string     `db:"author"           json:"author"`
	MetaDescription string     `db:"meta_description" json:"meta_description"`
	MetaKeywords    string     `db:"meta_keywords"    json:"meta_keywords"`
	Published       bool       `db:"published"        json:"published"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updated_at"`
	AutosavedAt     *time.Time `db:"autosaved_at"     json:"autosaved_at,omitempty"`
	Version         int        `db:"version"          json:"version"`
}

// swagger:model ArticleRequest
type ArticleRequest struct {
	Title           string `json:"title"            example:"Caring for a New Puppy"`
	Content         string `json:"content"          example:"<p>The first weeks matter most.</p>"`
	Excerpt         string `json:"excerpt"          example:"Short preview text"`
	Author          string `json:"author"           example:"Paws & Tails"`
	MetaDescription string `json:"meta_description" example:"A guide to puppy care"`
	MetaKeywords    string `json:"meta_keywords"    example:"puppy,care,training"`
	Published       *bool  `json:"published,omitempty"`

	// ImageURL is set by the handler after a multipart upload.
	ImageURL string `json:"-"`
}

// swagger:model AutosaveRequest
type AutosaveRequest struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}

type PreviewRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PreviewResponse struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt"`
	Slug    string   `json:"slug"`
}
