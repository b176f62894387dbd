// Package calculator computes per-participant shares of an expense.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrInvalidSplit is returned when a split cannot be computed from the given
// inputs: missing details for a policy that requires them, or detail values
// that do not sum to the expected total within models.Tolerance.
var ErrInvalidSplit = errors.New("invalid split")

// Split computes each participant's owed share of amount under the given
// split type. It is a pure function: no entity lookups, no side effects.
//
// The returned map has an entry for every participant. Under percentage and
// exact splits, a participant with no entry in details owes zero; they still
// appear in the result (and in the expense's participant list) but contribute
// nothing to balances. That mirrors the long-standing behavior of the system
// and is deliberately not treated as a validation error.
func Split(amount float64, splitType models.SplitType, participants []string, details map[string]float64) (map[string]float64, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no participants", ErrInvalidSplit)
	}

	switch splitType {
	case models.SplitEqual:
		return splitEqual(amount, participants), nil
	case models.SplitPercentage:
		return splitPercentage(amount, participants, details)
	case models.SplitExact:
		return splitExact(amount, participants, details)
	default:
		return nil, fmt.Errorf("%w: unknown split type %q", ErrInvalidSplit, splitType)
	}
}

func splitEqual(amount float64, participants []string) map[string]float64 {
	share := amount / float64(len(participants))
	shares := make(map[string]float64, len(participants))
	for _, p := range participants {
		shares[p] = share
	}
	return shares
}

func splitPercentage(amount float64, participants []string, details map[string]float64) (map[string]float64, error) {
	if len(details) == 0 {
		return nil, fmt.Errorf("%w: percentage split requires split details", ErrInvalidSplit)
	}

	var totalPct float64
	for _, pct := range details {
		totalPct += pct
	}
	if math.Abs(totalPct-100.0) > models.Tolerance {
		return nil, fmt.Errorf("%w: percentages must sum to 100, got %.2f", ErrInvalidSplit, totalPct)
	}

	shares := make(map[string]float64, len(participants))
	for _, p := range participants {
		shares[p] = (details[p] / 100.0) * amount
	}
	return shares, nil
}

func splitExact(amount float64, participants []string, details map[string]float64) (map[string]float64, error) {
	if len(details) == 0 {
		return nil, fmt.Errorf("%w: exact split requires split details", ErrInvalidSplit)
	}

	var totalExact float64
	for _, v := range details {
		totalExact += v
	}
	if math.Abs(totalExact-amount) > models.Tolerance {
		return nil, fmt.Errorf("%w: exact amounts must sum to %.2f, got %.2f", ErrInvalidSplit, amount, totalExact)
	}

	shares := make(map[string]float64, len(participants))
	for _, p := range participants {
		shares[p] = details[p]
	}
	return shares, nil
}
