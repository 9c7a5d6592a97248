package types

import "math"

// ItemsPerPage is the fixed size of an invoice list page
const ItemsPerPage = 6

// MaxPage is the last page whose row window end fits in an int
const MaxPage = math.MaxInt / ItemsPerPage

// PageWindow is the offset/limit range selected by a 1-indexed page
type PageWindow struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageWindow converts a 1-indexed page into its row window.
// Callers validate 1 <= page <= MaxPage.
func NewPageWindow(page int) PageWindow {
	return PageWindow{
		Offset: (page - 1) * ItemsPerPage,
		Limit:  ItemsPerPage,
	}
}

// TotalPages returns ceil(count / ItemsPerPage)
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(ItemsPerPage)))
}
