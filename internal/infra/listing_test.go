package infra

import (
	"testing"

	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/stretchr/testify/require"
)

var testSpec = listSpec{
	defaultSort: "created_at DESC",
	sortable:    map[string]string{"title": "title", "year": "year"},
	search:      []string{"title", "author"},
	filters:     map[string]string{"year": "year"},
	nullFlags:   map[string]string{"published": "published_at"},
}

func TestListSpecDefaults(t *testing.T) {
	where, args, order := testSpec.build(ports.ListParams{})

	require.Empty(t, where)
	require.Empty(t, args)
	require.Equal(t, " ORDER BY created_at DESC", order)
}

func TestListSpecSearch(t *testing.T) {
	where, args, _ := testSpec.build(ports.ListParams{Search: "  dylan "})

	require.Equal(t, " WHERE (title ILIKE $1 OR author ILIKE $1)", where)
	require.Equal(t, []any{"%dylan%"}, args)
}

func TestListSpecFilters(t *testing.T) {
	where, args, _ := testSpec.build(ports.ListParams{
		Filters: map[string]string{"year": "1999"},
	})

	require.Equal(t, " WHERE year = $1", where)
	require.Equal(t, []any{"1999"}, args)
}

func TestListSpecNullFlag(t *testing.T) {
	where, _, _ := testSpec.build(ports.ListParams{
		Filters: map[string]string{"published": "true"},
	})
	require.Equal(t, " WHERE published_at IS NOT NULL", where)

	where, _, _ = testSpec.build(ports.ListParams{
		Filters: map[string]string{"published": "false"},
	})
	require.Equal(t, " WHERE published_at IS NULL", where)
}

func TestListSpecIgnoresUnknownKeys(t *testing.T) {
	// a key outside the whitelist never reaches the SQL
	where, args, order := testSpec.build(ports.ListParams{
		Sort:    "password_hash; DROP TABLE books",
		Filters: map[string]string{"hacker": "1"},
	})

	require.Empty(t, where)
	require.Empty(t, args)
	require.Equal(t, " ORDER BY created_at DESC", order)
}

func TestListSpecSortWhitelist(t *testing.T) {
	_, _, order := testSpec.build(ports.ListParams{Sort: "title", Order: "desc"})
	require.Equal(t, " ORDER BY title DESC, id DESC", order)

	_, _, order = testSpec.build(ports.ListParams{Sort: "title"})
	require.Equal(t, " ORDER BY title ASC, id ASC", order)
}

func TestWindowPlaceholders(t *testing.T) {
	p := ports.ListParams{Page: 3, PageSize: 10}

	clause, args := window([]any{"%x%"}, p)
	require.Equal(t, " LIMIT $2 OFFSET $3", clause)
	require.Equal(t, []any{"%x%", 10, 20}, args)
}
