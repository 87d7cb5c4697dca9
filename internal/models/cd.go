package models

import "time"

type Cd struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Artist      string      `db:"artist" json:"artist"`
	Label       string      `db:"label" json:"label"`
	Year        string      `db:"year" json:"year"`
	Format      string      `db:"format" json:"format"` // album, single, ep, compilation
	Notes       string      `db:"notes" json:"notes"`
	CoverID     *int64      `db:"cover_id" json:"coverId"`
	Cover       *UploadFile `db:"-" json:"cover"`
	PublishedAt *time.Time  `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`

	// Tracks are loaded for detail responses and carried as the desired
	// final state on writes. ID == 0 marks a track that does not exist yet.
	Tracks []CdTrack `db:"-" json:"tracks"`
}

type CdTrack struct {
	ID           int64  `db:"id" json:"id"`
	CdID         int64  `db:"cd_id" json:"cdId"`
	Position     int    `db:"position" json:"position"`
	Title        string `db:"title" json:"title"`
	DurationSecs int    `db:"duration_secs" json:"durationSecs"`
	LyricID      *int64 `db:"lyric_id" json:"lyricId"`
}
