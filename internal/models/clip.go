package models

import "time"

type Clip struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	URL         string      `db:"url" json:"url"` // external video link, must be http(s)
	Year        string      `db:"year" json:"year"`
	Summary     string      `db:"summary" json:"summary"`
	StillID     *int64      `db:"still_id" json:"stillId"`
	Still       *UploadFile `db:"-" json:"still"`
	PublishedAt *time.Time  `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
