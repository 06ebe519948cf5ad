package model

import (
	"encoding/json"
	"time"
)

type SiteContent struct {
	Section   ContentSection  `db:"section" json:"section"`
	Content   json.RawMessage `db:"content" json:"content"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// UploadHandle is a short-lived signed URL the admin panel PUTs an image to.
type UploadHandle struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
