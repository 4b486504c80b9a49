package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInsufficientStock is returned when an adjustment would make quantity negative
var ErrInsufficientStock = errors.New("insufficient stock")

// Supply is an inventory item kept in the document store
type Supply struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Supplier    string          `json:"supplier,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the item is at or below its reorder level
func (s *Supply) IsLowStock() bool {
	return s.Quantity <= s.MinQuantity
}

type SupplyFilter struct {
	Category string
	LowStock bool
}
