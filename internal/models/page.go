package models

const (
	FormatModern = "modern"
	FormatLegacy = "legacy"
)

type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	PageCount int   `json:"pageCount"`
	Total     int64 `json:"total"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	count := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		count++
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		PageCount: int(count),
		Total:     total,
	}
}

type pageMeta struct {
	Pagination Pagination `json:"pagination"`
}

type modernEnvelope struct {
	Data any      `json:"data"`
	Meta pageMeta `json:"meta"`
}

type legacyEnvelope struct {
	Results    any        `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// Envelope wraps a result page in the requested response shape. The legacy
// shape is what the pre-rewrite admin consumed; the modern one is the
// default.
func Envelope(format string, data any, p Pagination) any {
	if format == FormatLegacy {
		return legacyEnvelope{Results: data, Pagination: p}
	}
	return modernEnvelope{Data: data, Meta: pageMeta{Pagination: p}}
}
