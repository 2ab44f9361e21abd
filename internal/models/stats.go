package models

type ArticleStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

const (
	IssueMissingHTML  = "missing_html"
	IssueOrphanedHTML = "orphaned_html"
)

// IntegrityIssue describes a mismatch between the article table and the
// generated pages.
type IntegrityIssue struct {
	Type      string `json:"type"`
	ArticleID int64  `json:"article_id,omitempty"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
}

type IntegrityReport struct {
	Issues   []IntegrityIssue `json:"issues"`
	Repaired int              `json:"repaired"`
}
