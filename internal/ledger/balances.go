package ledger

import (
	"math"

	"github.com/splitledger/splitledger/internal/models"
)

// adjustBalance applies a signed delta to user's balance entry for
// counterparty and prunes the entry if the result is within tolerance of
// zero. Entries are created on demand, so a settlement or expense between
// users with no prior history starts from zero.
func adjustBalance(user *models.User, counterparty string, delta float64) {
	updated := user.Balances[counterparty] + delta
	if math.Abs(updated) < models.Tolerance {
		delete(user.Balances, counterparty)
		return
	}
	user.Balances[counterparty] = updated
}

// applyExpense records the owed shares against the payer's balances. For
// every occurrence of a participant other than the payer, the payer is owed
// that participant's share and the participant owes the payer the same
// amount. Both sides move in the same call, which is what preserves the
// mirror invariant between the two balance maps.
//
// Iteration is over the participant list, not the share map: a user listed
// twice is charged twice, matching the equal-split divisor that counted them
// twice.
func applyExpense(payer *models.User, participants []*models.User, splitAmong []string, shares map[string]float64) {
	byID := make(map[string]*models.User, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	for _, userID := range splitAmong {
		if userID == payer.ID {
			continue
		}
		owed := shares[userID]
		if owed == 0 {
			continue
		}
		adjustBalance(payer, userID, owed)
		adjustBalance(byID[userID], payer.ID, -owed)
	}
}

// applySettlement records a direct repayment from payer to receiver. It
// moves the balance in the opposite direction of an expense: the payment
// reduces what the payer owes (or increases what they are owed).
func applySettlement(payer, receiver *models.User, amount float64) {
	adjustBalance(payer, receiver.ID, amount)
	adjustBalance(receiver, payer.ID, -amount)
}
