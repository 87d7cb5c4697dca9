package models

import "time"

type Book struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Author      string      `db:"author" json:"author"`
	Publisher   string      `db:"publisher" json:"publisher"`
	Year        string      `db:"year" json:"year"` // 4-digit, stored as text like the old records
	ISBN        string      `db:"isbn" json:"isbn"`
	Summary     string      `db:"summary" json:"summary"`
	CoverID     *int64      `db:"cover_id" json:"coverId"`
	Cover       *UploadFile `db:"-" json:"cover"`
	PublishedAt *time.Time  `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
