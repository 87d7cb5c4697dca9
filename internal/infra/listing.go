package infra

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/backstage/internal/ports"
)

// listSpec is the per-table whitelist a list query is built from. Anything
// in ListParams that is not named here is ignored, so sort columns and
// filter keys never reach the SQL as raw input.
type listSpec struct {
	defaultSort string // column, including direction fallback "x DESC"
	sortable    map[string]string
	search      []string          // columns ORed into an ILIKE when q is set
	filters     map[string]string // query key -> column equality
	nullFlags   map[string]string // query key (true/false) -> nullable column
}

func (s listSpec) build(p ports.ListParams) (where string, args []any, order string) {
	var conds []string

	if q := strings.TrimSpace(p.Search); q != "" && len(s.search) > 0 {
		args = append(args, "%"+q+"%")
		n := len(args)
		var ors []string
		for _, col := range s.search {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, n))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	for key, val := range p.Filters {
		if col, ok := s.filters[key]; ok && val != "" {
			args = append(args, val)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
			continue
		}
		if col, ok := s.nullFlags[key]; ok {
			switch val {
			case "true":
				conds = append(conds, col+" IS NOT NULL")
			case "false":
				conds = append(conds, col+" IS NULL")
			}
		}
	}

	where = ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	col, ok := s.sortable[p.Sort]
	if !ok {
		return where, args, " ORDER BY " + s.defaultSort
	}
	dir := "ASC"
	if strings.EqualFold(p.Order, "desc") {
		dir = "DESC"
	}
	return where, args, fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// window appends LIMIT/OFFSET placeholders for the page bounds.
func window(args []any, p ports.ListParams) (string, []any) {
	args = append(args, p.Limit(), p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
