package models

// User is the authenticated seller record supplied by the backend at login.
// Country and currency fields drive the presentation side of the companion.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Country        string `json:"country"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
	Role           string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is what the companion keeps in the secure store between requests.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
