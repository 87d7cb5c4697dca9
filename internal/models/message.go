package models

import "time"

// Message is a contact-form submission. There is no publish cycle; the only
// state an admin toggles is read/unread via ReadAt.
type Message struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Subject   string     `db:"subject" json:"subject"`
	Body      string     `db:"body" json:"body"`
	ReadAt    *time.Time `db:"read_at" json:"readAt"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}
