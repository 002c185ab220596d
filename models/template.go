package models

import "time"

// TemplatePlaceholderThumbnail is used when a layout has no image block to
// derive a thumbnail from.
const TemplatePlaceholderThumbnail = "https://images.unsplash.com/photo-1499750310107-5fef28a66643"

// Template is a named, persisted builder layout reusable across campaigns.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Layout    []Element `json:"layout"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
