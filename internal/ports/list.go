package ports

// ListParams is the normalized query of a list endpoint. Delivery fills it
// from the request; repositories treat Sort and Filters as candidates and
// only honor whitelisted keys.
type ListParams struct {
	Page     int
	PageSize int
	Sort     string
	Order    string // "asc" or "desc"
	Search   string
	Filters  map[string]string
}

func (p ListParams) Limit() int  { return p.PageSize }
func (p ListParams) Offset() int { return (p.Page - 1) * p.PageSize }
