// internal/table/query.go
package table

import (
	"net/url"
	"strconv"
	"strings"
)

const maxPageSize = 100

// Query is table state as carried in a console URL:
// ?page=2&pageSize=20&sort=name,-createdAt&filter[status]=PENDING
type Query struct {
	Sorting    []SortKey
	Filters    []ColumnFilter
	Pagination PaginationState
}

func ParseQuery(values url.Values) Query {
	q := Query{Pagination: PaginationState{PageIndex: 0, PageSize: DefaultPageSize}}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Pagination.PageIndex = page - 1
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil && size > 0 && size <= maxPageSize {
		q.Pagination.PageSize = size
	}

	for _, raw := range strings.Split(values.Get("sort"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		key := SortKey{ID: raw}
		if strings.HasPrefix(raw, "-") {
			key = SortKey{ID: raw[1:], Desc: true}
		}
		q.Sorting = append(q.Sorting, key)
	}

	for key, vals := range values {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		id := key[len("filter[") : len(key)-1]
		if id != "" && vals[0] != "" {
			q.Filters = append(q.Filters, ColumnFilter{ID: id, Value: vals[0]})
		}
	}
	return q
}

// Apply loads q into the table. Unknown or disabled columns are ignored.
func (t *Table[T]) Apply(q Query) {
	t.SetSorting(q.Sorting)
	for _, f := range q.Filters {
		t.SetColumnFilter(f.ID, f.Value)
	}
	t.SetPagination(q.Pagination)
}

// View is the rendered state of a table.
type View[T any] struct {
	Rows      []T                       `json:"rows"`
	RowIDs    []string                  `json:"rowIds"`
	PageIndex int                       `json:"pageIndex"`
	PageSize  int                       `json:"pageSize"`
	PageCount int                       `json:"pageCount"`
	RowCount  int                       `json:"rowCount"`
	Sorting   []SortKey                 `json:"sorting"`
	Filters   []ColumnFilter            `json:"filters"`
	Columns   []string                  `json:"columns"`
	Facets    map[string]map[string]int `json:"facets,omitempty"`
}

// Snapshot renders the current page plus facets for the named columns.
// RowCount is the filtered total, or -1 for manual tables.
func (t *Table[T]) Snapshot(facetColumns ...string) View[T] {
	page := t.PageRows()
	p := t.Pagination()

	view := View[T]{
		Rows:      make([]T, len(page)),
		RowIDs:    make([]string, len(page)),
		PageIndex: p.PageIndex,
		PageSize:  p.PageSize,
		PageCount: t.PageCount(),
		RowCount:  -1,
		Sorting:   t.Sorting(),
		Filters:   t.ColumnFilters(),
	}
	for i, row := range page {
		view.Rows[i] = row.Original
		view.RowIDs[i] = row.ID
	}
	if !t.opts.ManualPagination {
		view.RowCount = len(t.FilteredRows())
	}
	for _, col := range t.VisibleColumns() {
		view.Columns = append(view.Columns, col.ID)
	}
	if len(facetColumns) > 0 {
		view.Facets = make(map[string]map[string]int, len(facetColumns))
		for _, id := range facetColumns {
			if values := t.FacetedUniqueValues(id); values != nil {
				view.Facets[id] = values
			}
		}
	}
	return view
}
