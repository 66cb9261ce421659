// internal/table/table.go
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPageSize = 10
	// UnknownPageCount is the manual page count meaning "more pages may exist".
	UnknownPageCount = -1
)

// Column describes how to read, sort and filter one field of T.
type Column[T any] struct {
	ID       string
	Header   string
	Accessor func(row T) any

	EnableSorting   bool
	EnableFiltering bool
	EnableHiding    bool

	// FilterFn overrides the default case-insensitive contains match.
	FilterFn func(value any, filter string) bool
	// SortFn overrides the default value ordering.
	SortFn func(a, b any) int
}

type SortKey struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

type ColumnFilter struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type PaginationState struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

type Options[T any] struct {
	Data    []T
	Columns []Column[T]

	DisableRowSelection bool
	// GetRowID defaults to the "id" column, then to the row index.
	GetRowID func(row T, index int) string

	// ManualPagination means Data already is the current page and PageCount
	// comes from the caller. The table never slices or counts in this mode.
	ManualPagination bool
	PageCount        int

	// Pagination, when set, is owned by the caller. Changes are only reported
	// through OnPaginationChange.
	Pagination         *PaginationState
	OnPaginationChange func(PaginationState)

	InitialSorting    []SortKey
	InitialFilters    []ColumnFilter
	InitialVisibility map[string]bool
}

type Row[T any] struct {
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Original T      `json:"original"`
}

// Table is a headless data table over a slice of T.
type Table[T any] struct {
	mu sync.RWMutex

	opts       Options[T]
	columns    map[string]*Column[T]
	sorting    []SortKey
	filters    []ColumnFilter
	visibility map[string]bool
	selection  map[string]bool
	pagination PaginationState
}

func New[T any](opts Options[T]) *Table[T] {
	t := &Table[T]{
		opts:       opts,
		columns:    make(map[string]*Column[T], len(opts.Columns)),
		visibility: make(map[string]bool),
		selection:  make(map[string]bool),
		pagination: PaginationState{PageIndex: 0, PageSize: DefaultPageSize},
	}
	for i := range t.opts.Columns {
		col := &t.opts.Columns[i]
		t.columns[col.ID] = col
	}
	if !opts.ManualPagination {
		t.opts.PageCount = 0
	}
	t.sorting = t.sortableKeys(opts.InitialSorting)
	t.filters = append([]ColumnFilter(nil), opts.InitialFilters...)
	for id, visible := range opts.InitialVisibility {
		t.visibility[id] = visible
	}
	return t
}

// SetData replaces the rows. In manual mode the page count is left untouched.
func (t *Table[T]) SetData(data []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opts.Data = data
}

// SetPageCount updates the caller-supplied page count of a manual table.
func (t *Table[T]) SetPageCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opts.ManualPagination {
		t.opts.PageCount = n
	}
}

func (t *Table[T]) Columns() []Column[T] {
	return t.opts.Columns
}

// VisibleColumns lists columns not hidden by the visibility state.
func (t *Table[T]) VisibleColumns() []Column[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Column[T], 0, len(t.opts.Columns))
	for _, col := range t.opts.Columns {
		if visible, ok := t.visibility[col.ID]; ok && !visible {
			continue
		}
		out = append(out, col)
	}
	return out
}

func (t *Table[T]) SetColumnVisibility(id string, visible bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	col, ok := t.columns[id]
	if !ok || (!visible && !col.EnableHiding) {
		return false
	}
	t.visibility[id] = visible
	return true
}

// Sorting

func (t *Table[T]) Sorting() []SortKey {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]SortKey(nil), t.sorting...)
}

// SetSorting replaces the sort keys, ignoring columns that cannot sort.
func (t *Table[T]) SetSorting(keys []SortKey) {
	t.mu.Lock()
	t.sorting = t.sortableKeys(keys)
	t.mu.Unlock()

	t.resetPageIndex()
}

func (t *Table[T]) sortableKeys(keys []SortKey) []SortKey {
	valid := make([]SortKey, 0, len(keys))
	for _, key := range keys {
		if col, ok := t.columns[key.ID]; ok && col.EnableSorting && col.Accessor != nil {
			valid = append(valid, key)
		}
	}
	return valid
}

// Filtering

func (t *Table[T]) ColumnFilters() []ColumnFilter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]ColumnFilter(nil), t.filters...)
}

// SetColumnFilter sets or, with an empty value, clears one column filter.
func (t *Table[T]) SetColumnFilter(id, value string) bool {
	t.mu.Lock()
	col, ok := t.columns[id]
	if !ok || !col.EnableFiltering {
		t.mu.Unlock()
		return false
	}

	next := make([]ColumnFilter, 0, len(t.filters)+1)
	for _, f := range t.filters {
		if f.ID != id {
			next = append(next, f)
		}
	}
	if value != "" {
		next = append(next, ColumnFilter{ID: id, Value: value})
	}
	t.filters = next
	t.mu.Unlock()

	t.resetPageIndex()
	return true
}

func (t *Table[T]) ResetColumnFilters() {
	t.mu.Lock()
	t.filters = nil
	t.mu.Unlock()

	t.resetPageIndex()
}

// Row selection

func (t *Table[T]) SetRowSelected(id string, selected bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.opts.DisableRowSelection {
		return false
	}
	if selected {
		t.selection[id] = true
	} else {
		delete(t.selection, id)
	}
	return true
}

// SelectPageRows selects or clears every row on the current page.
func (t *Table[T]) SelectPageRows(selected bool) {
	rows := t.PageRows()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opts.DisableRowSelection {
		return
	}
	for _, row := range rows {
		if selected {
			t.selection[row.ID] = true
		} else {
			delete(t.selection, row.ID)
		}
	}
}

func (t *Table[T]) ResetRowSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = make(map[string]bool)
}

func (t *Table[T]) IsRowSelected(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection[id]
}

// SelectedRows returns the selected rows among the current data.
func (t *Table[T]) SelectedRows() []Row[T] {
	rows := t.CoreRows()

	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Row[T], 0, len(t.selection))
	for _, row := range rows {
		if t.selection[row.ID] {
			out = append(out, row)
		}
	}
	return out
}

// Pagination

func (t *Table[T]) Pagination() PaginationState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paginationLocked()
}

func (t *Table[T]) paginationLocked() PaginationState {
	if t.opts.Pagination != nil {
		return *t.opts.Pagination
	}
	return t.pagination
}

// SetPagination applies next locally (uncontrolled) and reports it upward.
func (t *Table[T]) SetPagination(next PaginationState) {
	if next.PageSize <= 0 {
		next.PageSize = DefaultPageSize
	}
	if next.PageIndex < 0 {
		next.PageIndex = 0
	}

	t.mu.Lock()
	if t.opts.Pagination == nil {
		t.pagination = next
	}
	onChange := t.opts.OnPaginationChange
	t.mu.Unlock()

	if onChange != nil {
		onChange(next)
	}
}

func (t *Table[T]) SetPageIndex(index int) {
	p := t.Pagination()
	if count := t.PageCount(); count >= 0 && index > count-1 {
		index = count - 1
	}
	p.PageIndex = index
	t.SetPagination(p)
}

// SetPageSize keeps the first visible row on screen.
func (t *Table[T]) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := t.Pagination()
	top := p.PageIndex * p.PageSize
	t.SetPagination(PaginationState{PageIndex: top / size, PageSize: size})
}

func (t *Table[T]) NextPage() {
	if t.CanNextPage() {
		t.SetPageIndex(t.Pagination().PageIndex + 1)
	}
}

func (t *Table[T]) PreviousPage() {
	if t.CanPreviousPage() {
		t.SetPageIndex(t.Pagination().PageIndex - 1)
	}
}

func (t *Table[T]) CanPreviousPage() bool {
	return t.Pagination().PageIndex > 0
}

func (t *Table[T]) CanNextPage() bool {
	count := t.PageCount()
	if count == UnknownPageCount {
		return true
	}
	return t.Pagination().PageIndex+1 < count
}

// PageCount is the caller's value in manual mode, otherwise derived from the
// filtered row count.
func (t *Table[T]) PageCount() int {
	t.mu.RLock()
	manual, supplied := t.opts.ManualPagination, t.opts.PageCount
	size := t.paginationLocked().PageSize
	t.mu.RUnlock()

	if manual {
		return supplied
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return int(math.Ceil(float64(len(t.FilteredRows())) / float64(size)))
}

func (t *Table[T]) resetPageIndex() {
	t.mu.RLock()
	manual := t.opts.ManualPagination
	p := t.paginationLocked()
	t.mu.RUnlock()

	if manual || p.PageIndex == 0 {
		return
	}
	p.PageIndex = 0
	t.SetPagination(p)
}

// Row models: core -> filtered -> sorted -> paginated.

func (t *Table[T]) CoreRows() []Row[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]Row[T], len(t.opts.Data))
	for i, item := range t.opts.Data {
		rows[i] = Row[T]{ID: t.rowIDLocked(item, i), Index: i, Original: item}
	}
	return rows
}

func (t *Table[T]) FilteredRows() []Row[T] {
	rows := t.CoreRows()

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filterLocked(rows, "")
}

func (t *Table[T]) SortedRows() []Row[T] {
	rows := t.FilteredRows()

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.sorting) == 0 {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range t.sorting {
			col, ok := t.columns[key.ID]
			if !ok || col.Accessor == nil {
				continue
			}
			a, b := col.Accessor(rows[i].Original), col.Accessor(rows[j].Original)
			cmp := compareFn(col)(a, b)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return rows
}

// PageRows is what gets rendered. Manual tables return their data as is.
func (t *Table[T]) PageRows() []Row[T] {
	rows := t.SortedRows()

	t.mu.RLock()
	manual := t.opts.ManualPagination
	p := t.paginationLocked()
	t.mu.RUnlock()

	if manual {
		return rows
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	start := p.PageIndex * p.PageSize
	if start >= len(rows) {
		return []Row[T]{}
	}
	end := start + p.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// FacetedUniqueValues counts distinct values of a column across rows that pass
// every filter except the column's own.
func (t *Table[T]) FacetedUniqueValues(columnID string) map[string]int {
	rows := t.CoreRows()

	t.mu.RLock()
	defer t.mu.RUnlock()

	col, ok := t.columns[columnID]
	if !ok || col.Accessor == nil {
		return nil
	}
	counts := make(map[string]int)
	for _, row := range t.filterLocked(rows, columnID) {
		counts[stringify(col.Accessor(row.Original))]++
	}
	return counts
}

func (t *Table[T]) filterLocked(rows []Row[T], skip string) []Row[T] {
	if len(t.filters) == 0 {
		return rows
	}

	out := rows[:0:0]
	for _, row := range rows {
		keep := true
		for _, f := range t.filters {
			if f.ID == skip {
				continue
			}
			col, ok := t.columns[f.ID]
			if !ok || col.Accessor == nil {
				continue
			}
			match := col.FilterFn
			if match == nil {
				match = containsFold
			}
			if !match(col.Accessor(row.Original), f.Value) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table[T]) rowIDLocked(item T, index int) string {
	if t.opts.GetRowID != nil {
		return t.opts.GetRowID(item, index)
	}
	if col, ok := t.columns["id"]; ok && col.Accessor != nil {
		return stringify(col.Accessor(item))
	}
	return strconv.Itoa(index)
}

func containsFold(value any, filter string) bool {
	return strings.Contains(strings.ToLower(stringify(value)), strings.ToLower(filter))
}

// EqualsFilter matches the whole value, case-insensitively. Useful for enums.
func EqualsFilter(value any, filter string) bool {
	return strings.EqualFold(stringify(value), filter)
}

// InFilter matches any of a comma separated list of values.
func InFilter(value any, filter string) bool {
	v := stringify(value)
	for _, candidate := range strings.Split(filter, ",") {
		if strings.EqualFold(strings.TrimSpace(candidate), v) {
			return true
		}
	}
	return false
}

func compareFn[T any](col *Column[T]) func(a, b any) int {
	if col.SortFn != nil {
		return col.SortFn
	}
	return CompareValues
}

// CompareValues orders numbers, strings, times and bools; nil sorts last.
func CompareValues(a, b any) int {
	a, b = deref(a), deref(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	}

	return strings.Compare(strings.ToLower(stringify(a)), strings.ToLower(stringify(b)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *bool:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}

func stringify(v any) string {
	v = deref(v)
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
