// Package api defines the wire contract of the Cha-Ching REST backend and
// the typed resource services that speak it. Every response arrives wrapped
// in an Envelope; services return the whole envelope so callers can reach
// related_items, pagination and meta when present.
package api

// Envelope is the standard wrapper around every API response.
type Envelope[T any] struct {
	Data         T             `json:"data"`
	Error        string        `json:"error,omitempty"`
	RelatedItems *RelatedItems `json:"related_items,omitempty"`
	Pagination   *Pagination   `json:"pagination,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
}

// Pagination describes the page cursor state of a list response.
// NextPage is nil on the final page.
type Pagination struct {
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
	ItemsPerPage int  `json:"items_per_page"`
	NextPage     *int `json:"next_page"`
	PrevPage     *int `json:"prev_page"`
}

// RelatedItems carries sibling lookup tables accompanying a primary list,
// keyed by entity id. Each page brings its own bundle.
type RelatedItems struct {
	Categories     map[int]*Category      `json:"categories"`
	PaymentMethods map[int]*PaymentMethod `json:"payment_methods"`
}

// Meta carries list-level aggregates computed server-side.
type Meta struct {
	TotalAmount float64 `json:"total_amount"`
	TotalCount  int     `json:"total_count"`
}
