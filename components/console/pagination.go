package console

import "github.com/goliatone/go-hotel-admin/pkg/hotelapi"

// PageWindow is the pagination control's view state. Visible is false when
// there is a single page, in which case the control renders nothing.
type PageWindow struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	Start       int
	End         int
	HasPrev     bool
	HasNext     bool
	Visible     bool
}

// Window computes the "Showing X to Y of Z" range and prev/next availability.
func Window(p hotelapi.Pagination) PageWindow {
	w := PageWindow{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
	}
	if p.TotalPages <= 1 {
		return w
	}
	w.Visible = true
	w.Start = (p.CurrentPage-1)*p.ItemsPerPage + 1
	w.End = p.CurrentPage * p.ItemsPerPage
	if w.End > p.TotalItems {
		w.End = p.TotalItems
	}
	w.HasPrev = p.CurrentPage > 1
	w.HasNext = p.CurrentPage < p.TotalPages
	return w
}
