package models

const (
	SaleStatusPaid    = "PAID"
	SaleStatusPending = "PENDING"
)

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodOther    = "OTHER"
)

// SaleItem carries the price the product had at the moment of the sale.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateSaleRequest is the payload submitted to the backend "create sale"
// endpoint. The companion assembles it from cart state; the backend owns
// everything after submission.
type CreateSaleRequest struct {
	Items                []SaleItem `json:"items"`
	Status               string     `json:"status"`
	ClientID             string     `json:"clientId,omitempty"`
	PaymentMethod        string     `json:"paymentMethod"`
	InitialPaymentAmount float64    `json:"initialPaymentAmount,omitempty"`
}

type Sale struct {
	ID            string     `json:"id"`
	Items         []SaleItem `json:"items"`
	Status        string     `json:"status"`
	ClientID      string     `json:"clientId,omitempty"`
	Total         float64    `json:"total,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	SaleDate      string     `json:"saleDate,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}

type SalePage struct {
	Data        []Sale  `json:"data"`
	TotalItems  int     `json:"totalItems"`
	TotalPages  int     `json:"totalPages"`
	TotalSale   float64 `json:"totalSale"`
	CurrentPage int     `json:"currentPage"`
	PageSize    int     `json:"pageSize"`
}

type CheckoutRequest struct {
	PaymentMethod        string  `json:"paymentMethod" validate:"required,oneof=CASH CARD TRANSFER OTHER"`
	InitialPaymentAmount float64 `json:"initialPaymentAmount" validate:"gte=0"`
}
