package models

// Client is a buyer a sale can be associated with. The companion only holds
// the identifier; existence is validated by the backend at checkout time.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type CreateClientRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

type ClientPage struct {
	Data        []Client `json:"data"`
	TotalItems  int      `json:"totalItems"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
	PageSize    int      `json:"pageSize"`
}
