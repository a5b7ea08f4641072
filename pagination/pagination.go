// Package pagination computes the pages of a listing and the controls to move between them.
package pagination

import (
	"math/big"
	"strconv"
)

// A Pager describes one page of a listing.
type Pager struct {
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// An Item is one control of a pagination bar.
type Item struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Label is what Item displays.
func (i Item) Label() string {
	if i.Ellipsis {
		return "..."
	}

	return strconv.Itoa(i.Page)
}

// New constructs a Pager over total items, perPage per page, showing page.
//
// There is always at least one page; page is clamped into range.
func New(total, perPage, page int) Pager {
	p := Pager{
		PerPage:    max(1, perPage),
		TotalItems: max(0, total),
	}

	// NOTE(dlk): use math/big for accurate float64 division.
	totalPages := new(big.Float).SetInt64(int64(p.TotalItems))
	totalPages.Quo(totalPages, new(big.Float).SetInt64(int64(p.PerPage)))

	// NOTE(dlk): We want rounding up, but Int64 rounds towards zero.
	// So, add one when it truncates to get rounding up to the ceiling.
	tp, acc := totalPages.Int64()
	if acc == big.Below {
		tp += 1
	}

	p.TotalPages = max(1, int(tp))
	p.Page = min(max(1, page), p.TotalPages)

	return p
}

// HasPrev reports whether there is a page before the current one.
func (p Pager) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether there is a page after the current one.
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

// Prev is the page before the current one.
func (p Pager) Prev() int { return max(1, p.Page-1) }

// Next is the page after the current one.
func (p Pager) Next() int { return min(p.TotalPages, p.Page+1) }

// Items lists the controls of a pagination bar:
// the first page, an ellipsis when pages are skipped,
// the current page and its neighbours, another ellipsis, and the last page.
func (p Pager) Items() []Item {
	items := []Item{{Page: 1, Current: p.Page == 1}}
	if p.Page > 3 {
		items = append(items, Item{Ellipsis: true})
	}

	for i := max(2, p.Page-1); i <= min(p.TotalPages-1, p.Page+1); i++ {
		items = append(items, Item{Page: i, Current: p.Page == i})
	}

	if p.Page < p.TotalPages-2 {
		items = append(items, Item{Ellipsis: true})
	}

	if p.TotalPages > 1 {
		items = append(items, Item{Page: p.TotalPages, Current: p.Page == p.TotalPages})
	}

	return items
}
