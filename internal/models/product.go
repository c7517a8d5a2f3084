package models

// Product is the catalog value returned by the storefront backend. Only a
// snapshot of it is copied into the cart; the catalog stays authoritative.
type Product struct {
	ID          string  `json:"id"          validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Cost        float64 `json:"cost,omitempty"`
	Quantity    int     `json:"quantity"    validate:"gte=0"`
	SKU         string  `json:"sku,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
}

type ProductPage struct {
	Data        []Product `json:"data"`
	TotalItems  int       `json:"totalItems"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
}
