package utils

import (
	"strconv"
	"strings"
)

// Page is one slice of an ordered collection plus what a template needs to
// draw previous/next controls.
type Page[T any] struct {
	Items    []T
	Number   int
	PerPage  int
	Count    int64
	NumPages int
}

// NewPage works out which page raw refers to for a collection of count
// items. Items is left empty; fetch them with Offset and PerPage.
func NewPage[T any](count int64, perPage int, raw string) *Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		// 空集合也有一页
		numPages = 1
	}
	return &Page[T]{
		Number:   ParsePageNumber(raw, numPages),
		PerPage:  perPage,
		Count:    count,
		NumPages: numPages,
	}
}

// PaginateSlice cuts an in-memory sequence the same way NewPage does.
func PaginateSlice[T any](items []T, perPage int, raw string) *Page[T] {
	page := NewPage[T](int64(len(items)), perPage, raw)
	start := page.Offset()
	end := start + page.PerPage
	if end > len(items) {
		end = len(items)
	}
	if start < end {
		page.Items = items[start:end]
	}
	return page
}

// ParsePageNumber turns the ?page= value into a 1-based page number.
// Garbage and values below 1 give the first page, values past the end give
// the last page.
func ParsePageNumber(raw string, numPages int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

// Offset is the index of the first item on this page.
func (p *Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasOtherPages() bool {
	return p.NumPages > 1
}

func (p *Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

func (p *Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

// StartIndex is the 1-based position of the first item, 0 for an empty page.
func (p *Page[T]) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndIndex is the 1-based position of the last item on the page.
func (p *Page[T]) EndIndex() int {
	if p.Number == p.NumPages {
		return int(p.Count)
	}
	return p.Number * p.PerPage
}

// PageRange lists every page number, for rendering numbered links.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
