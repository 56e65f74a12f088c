package domain

import "fmt"

// CalculateSeatPrice returns the base price of a seat: the exhibition tier
// price plus the seat tier price. No discount multiplier is applied here.
func CalculateSeatPrice(exhibitionPrice, seatPrice Money) (Money, error) {
	if exhibitionPrice < 0 {
		return 0, fmt.Errorf("%w: exhibition price must not be negative", ErrValidation)
	}
	if seatPrice < 0 {
		return 0, fmt.Errorf("%w: seat price must not be negative", ErrValidation)
	}
	return exhibitionPrice + seatPrice, nil
}

// ApplyTicketType applies the discount multiplier of a ticket type to a
// base price. FULL pays the base price; HALF and STUDENT_HALF pay half,
// rounded half a cent up. The base price must be positive.
func ApplyTicketType(base Money, t TicketType) (Money, error) {
	if base <= 0 {
		return 0, fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	switch t {
	case TicketFull:
		return base, nil
	case TicketHalf, TicketStudentHalf:
		return base.Half(), nil
	default:
		return 0, fmt.Errorf("%w: unknown ticket type %q", ErrValidation, t)
	}
}

// CalculateTotalPrice sums a non-empty collection of prices.
func CalculateTotalPrice(prices []Money) (Money, error) {
	if len(prices) == 0 {
		return 0, fmt.Errorf("%w: no prices to total", ErrValidation)
	}
	var total Money
	for _, p := range prices {
		total += p
	}
	return total, nil
}
