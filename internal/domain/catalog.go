package domain

import (
	"fmt"
	"strings"
)

// SeatType is a named seat pricing tier (STANDARD, VIP, ...). Its price is
// one of the two components of a seat's base price.
type SeatType struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// NewSeatType builds a seat type, enforcing a non-empty name and a strictly
// positive price. The positive-price rule is applied uniformly: tiers can
// neither be created with nor updated to a zero or negative price.
func NewSeatType(name string, price Money) (*SeatType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: seat type name is required", ErrValidation)
	}
	st := &SeatType{Name: name}
	if err := st.SetPrice(price); err != nil {
		return nil, err
	}
	return st, nil
}

// SetPrice is the only way to change the tier price. Non-positive values
// are rejected.
func (st *SeatType) SetPrice(price Money) error {
	if price <= 0 {
		return fmt.Errorf("%w: seat type price must be positive", ErrValidation)
	}
	st.Price = price
	return nil
}

// ExhibitionType is a named exhibition pricing tier (2D, 3D, IMAX, ...).
// Its price is the other component of a seat's base price.
type ExhibitionType struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// NewExhibitionType builds an exhibition type under the same positive-price
// rule as NewSeatType.
func NewExhibitionType(name string, price Money) (*ExhibitionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exhibition type name is required", ErrValidation)
	}
	et := &ExhibitionType{Name: name}
	if err := et.SetPrice(price); err != nil {
		return nil, err
	}
	return et, nil
}

// SetPrice is the only way to change the tier price. Non-positive values
// are rejected.
func (et *ExhibitionType) SetPrice(price Money) error {
	if price <= 0 {
		return fmt.Errorf("%w: exhibition type price must be positive", ErrValidation)
	}
	et.Price = price
	return nil
}
