package model

import (
	"time"
)

type GalleryItem struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Category    *string   `db:"category" json:"category,omitempty"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateGalleryItemParams struct {
	Title       string
	Description *string
	ImageURL    string
	Category    *string
	SortOrder   int
}

// UpdateGalleryItemParams holds a partial update; nil fields are left as is.
type UpdateGalleryItemParams struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
	SortOrder   *int
}

func (p UpdateGalleryItemParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil &&
		p.Category == nil && p.SortOrder == nil
}
