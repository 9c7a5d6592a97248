package dto

// MutationResponse reports the side effects a caller should apply after a
// successful write. Redirect is the view to navigate to; empty means stay.
type MutationResponse struct {
	Redirect string `json:"redirect,omitempty"`
}

// HasRedirect reports whether the caller should navigate away
func (r *MutationResponse) HasRedirect() bool {
	return r != nil && r.Redirect != ""
}

// ListResponse wraps a list of items
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

func NewListResponse[T any](items []T) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{Items: items}
}
