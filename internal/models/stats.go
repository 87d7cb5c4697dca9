package models

// Stats feeds the dashboard counters.
type Stats struct {
	Books          int64 `json:"books"`
	Cds            int64 `json:"cds"`
	Dvds           int64 `json:"dvds"`
	Clips          int64 `json:"clips"`
	Lyrics         int64 `json:"lyrics"`
	Photos         int64 `json:"photos"`
	Shows          int64 `json:"shows"`
	Texts          int64 `json:"texts"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
	Files          int64 `json:"files"`
}
