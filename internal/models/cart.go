package models

// CartItem is one product-quantity line inside the in-progress sale.
// Name, price and stock are snapshots taken when the product first enters
// the cart; they are not live-synced to the catalog. AvailableStock acts as
// an upper clamp on quantity until checkout re-validates against the server.
type CartItem struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	ImageURL       string  `json:"image_url,omitempty"`
	AvailableStock int     `json:"availableStock"`
}

type AddItemRequest struct {
	Product  Product `json:"product"  validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type SelectClientRequest struct {
	ClientID string `json:"clientId"`
}
