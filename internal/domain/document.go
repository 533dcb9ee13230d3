package domain

import "time"

// Product is a typed catalog document. Its json tags define the wire format
// produced by the document converter.
type Product struct {
	ID          string     `json:"_id,omitempty"`
	SKU         string     `json:"sku"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency,omitempty"`
	InStock     bool       `json:"in_stock"`
	Quantity    int        `json:"quantity"`
	CategoryIDs []string   `json:"category_ids,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Category is a typed catalog document.
type Category struct {
	ID         string     `json:"_id,omitempty"`
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	ParentSlug string     `json:"parent_slug,omitempty"`
	Depth      int        `json:"depth"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}
