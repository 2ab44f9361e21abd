package models

import "time"

// ArticleVersion is a point-in-time copy of an article's content fields.
type ArticleVersion struct {
	ID              int64     `db:"id"               json:"id"`
	ArticleID       int64     `db:"article_id"       json:"article_id"`
	VersionNumber   int       `db:"version_number"   json:"version_number"`
	Title           string    `db:"title"            json:"title"`
	Content         string    `db:"content"          json:"content"`
	Excerpt         string    `db:"excerpt"          json:"excerpt"`
	ImageURL        string    `db:"image_url"        json:"image_url"`
	Author          string    `db:"author"           json:"author"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	MetaKeywords    string    `db:"meta_keywords"    json:"meta_keywords"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}
