package models

import "time"

type Photo struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Caption     string      `db:"caption" json:"caption"`
	Credit      string      `db:"credit" json:"credit"`
	Taken       string      `db:"taken" json:"taken"` // YYYY-MM-DD, stored as text
	ImageID     *int64      `db:"image_id" json:"imageId"`
	Image       *UploadFile `db:"-" json:"image"`
	PublishedAt *time.Time  `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
