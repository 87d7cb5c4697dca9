package ws

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
)

var feedRooms = map[string]bool{
	"feed":              true,
	models.KindBooks:    true,
	models.KindCds:      true,
	models.KindDvds:     true,
	models.KindClips:    true,
	models.KindLyrics:   true,
	models.KindPhotos:   true,
	models.KindShows:    true,
	models.KindTexts:    true,
	models.KindMessages: true,
	models.KindFiles:    true,
}

// FeedHandler upgrades GET /ws?room=...&token=... into a read-only change
// feed. Browsers cannot set an Authorization header on a ws dial, so the
// token rides in the query string.
func FeedHandler(hub *Hub, auth ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		if _, err := auth.ValidateToken(r.Context(), token); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		room := r.URL.Query().Get("room")
		if room == "" {
			room = "feed"
		}
		if !feedRooms[room] {
			http.Error(w, "unknown room", http.StatusBadRequest)
			return
		}

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "ws upgrade failed", http.StatusBadRequest)
			return
		}

		hub.Register(room, conn)
		defer hub.Unregister(room, conn)

		// the feed is one-way; the read loop only notices the disconnect
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
