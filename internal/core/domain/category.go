package domain

// Category labels expenses. Name is unique per owner.
type Category struct {
	CategoryID string `json:"categoryID"`
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Icon       string `json:"icon,omitempty"`
	AuditFields
}
