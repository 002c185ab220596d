package models

import "time"

// Article is a news entry shown on the public site and the company portal.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Body        string    `json:"body,omitempty"`
	Image       string    `json:"image,omitempty"`
	CompanyID   string    `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
