package models

// ValidationResult is the outcome of checking an article's title and body.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
