// Package refund selects and applies the cancellation refund rules.
//
// The rule set is closed: a cancellation either refunds the full price,
// half of it, or nothing, depending on how far ahead of check-in it
// happens. Rules are a plain enum with a pure selector, no dispatch
// machinery needed.
package refund

import (
	"errors"
	"math"
)

var ErrInvalidDaysDiff = errors.New("invalid days difference")

// Rule is one of the cancellation refund variants.
type Rule int

const (
	// Full refunds the whole price: the business retains nothing.
	Full Rule = iota
	// Partial refunds half of the price.
	Partial
	// None forfeits the stay: the full price is retained.
	None
)

func (r Rule) String() string {
	switch r {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// CalculateRefund returns the amount the business retains after applying
// the rule to totalPrice. The refunded amount is the complement.
func (r Rule) CalculateRefund(totalPrice float64) float64 {
	switch r {
	case Full:
		return 0
	case Partial:
		return totalPrice * 0.5
	default:
		return totalPrice
	}
}

// SelectRule picks the refund rule for a cancellation daysDiff days before
// check-in. daysDiff may be negative when the cancellation happens after
// the check-in date; on or after check-in day the stay is forfeited.
//
// Returns refund.ErrInvalidDaysDiff when daysDiff is NaN.
func SelectRule(daysDiff float64) (Rule, error) {
	if math.IsNaN(daysDiff) {
		return 0, ErrInvalidDaysDiff
	}

	switch {
	case daysDiff > 7:
		return Full, nil
	case daysDiff > 0:
		return Partial, nil
	default:
		return None, nil
	}
}
