package models

import "time"

type Show struct {
	ID          int64      `db:"id" json:"id"`
	Venue       string     `db:"venue" json:"venue"`
	City        string     `db:"city" json:"city"`
	Country     string     `db:"country" json:"country"`
	ShowDate    string     `db:"show_date" json:"showDate"` // YYYY-MM-DD
	Notes       string     `db:"notes" json:"notes"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
