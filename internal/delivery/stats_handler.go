package delivery

import (
	"net/http"

	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type StatsHandler struct {
	stats ports.StatsRepository
	log   *logger.ZapLogger
}

func NewStatsHandler(stats ports.StatsRepository, log *logger.ZapLogger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Counts(r.Context())
	if err != nil {
		writeError(w, "get stats", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
