package models

import "time"

type Dvd struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Director    string      `db:"director" json:"director"`
	Label       string      `db:"label" json:"label"`
	Year        string      `db:"year" json:"year"`
	Region      string      `db:"region" json:"region"`
	Notes       string      `db:"notes" json:"notes"`
	CoverID     *int64      `db:"cover_id" json:"coverId"`
	Cover       *UploadFile `db:"-" json:"cover"`
	PublishedAt *time.Time  `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`

	Tracks []DvdTrack `db:"-" json:"tracks"`
}

// DvdTrack is a chapter/title entry on a DVD, ordered by Position.
type DvdTrack struct {
	ID           int64  `db:"id" json:"id"`
	DvdID        int64  `db:"dvd_id" json:"dvdId"`
	Position     int    `db:"position" json:"position"`
	Title        string `db:"title" json:"title"`
	DurationSecs int    `db:"duration_secs" json:"durationSecs"`
}
