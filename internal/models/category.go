package models

// Category represents a row in the categories table. (user_id, name) is
// unique.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Color      string `db:"color"`
	Icon       string `db:"icon"` // nullable
	AuditFields
}
