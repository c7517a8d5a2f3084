package models

import "time"

// ExchangeRate is the dollar reference rate published by the backend.
type ExchangeRate struct {
	ID          string    `json:"id"`
	Rate        float64   `json:"rate"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"lastUpdated"`
}
