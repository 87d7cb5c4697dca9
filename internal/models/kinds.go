package models

// Catalog kinds, used as event kinds, upload-ref owner kinds and ws rooms.
const (
	KindBooks    = "books"
	KindCds      = "cds"
	KindDvds     = "dvds"
	KindClips    = "clips"
	KindLyrics   = "lyrics"
	KindPhotos   = "photos"
	KindShows    = "shows"
	KindTexts    = "texts"
	KindMessages = "messages"
	KindFiles    = "files"
)
