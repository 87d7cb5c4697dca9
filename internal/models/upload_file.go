package models

import "time"

const (
	FileKindImage = "image"
	FileKindAudio = "audio"
	FileKindOther = "other"
)

type UploadFile struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"` // slugged display name, unique on disk
	OriginalName string    `db:"original_name" json:"originalName"`
	Mime         string    `db:"mime" json:"mime"`
	Kind         string    `db:"kind" json:"kind"` // image, audio or other; derived from mime
	SizeBytes    int64     `db:"size_bytes" json:"sizeBytes"`
	Path         string    `db:"path" json:"-"`   // blob-store key
	URL          string    `db:"url" json:"url"`  // public path, /uploads/<key>
	Sha256       string    `db:"sha256" json:"sha256"`
	Width        *int      `db:"width" json:"width"`
	Height       *int      `db:"height" json:"height"`
	DurationSecs *int      `db:"duration_secs" json:"durationSecs"` // audio only, best-effort
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UploadRef ties a file to one attachment slot of an owning record. A file
// with zero remaining refs is an orphan and gets removed together with its
// blob.
type UploadRef struct {
	FileID    int64  `db:"file_id" json:"fileId"`
	OwnerKind string `db:"owner_kind" json:"ownerKind"`
	OwnerID   int64  `db:"owner_id" json:"ownerId"`
	Field     string `db:"owner_field" json:"field"`
}

// Owner identifies the record holding a file reference.
type Owner struct {
	Kind string
	ID   int64
}
