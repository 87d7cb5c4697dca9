package delivery

import (
	"net/http"
	"strconv"

	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseListParams normalizes the list query. Out-of-range page values are
// clamped rather than rejected; only the named filter keys are carried
// through to the repository.
func parseListParams(r *http.Request, filterKeys ...string) ports.ListParams {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(q.Get("pageSize"))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	p := ports.ListParams{
		Page:     page,
		PageSize: size,
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Search:   q.Get("q"),
		Filters:  map[string]string{},
	}
	for _, k := range filterKeys {
		if v := q.Get(k); v != "" {
			p.Filters[k] = v
		}
	}
	return p
}

func responseFormat(r *http.Request) string {
	if r.URL.Query().Get("format") == models.FormatLegacy {
		return models.FormatLegacy
	}
	return models.FormatModern
}
