package ledger

import (
	"fmt"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
)

// Participant is one party in a split: an opaque user id and a non-negative
// share weight. Equal weights (or all-zero weights) mean an equal split.
type Participant struct {
	UserID int64
	Weight int64
}

// Share is one participant's slice of a split total, in minor units.
type Share struct {
	UserID      int64
	AmountMinor int64
}

// SplitAmount distributes totalMinor across the participants proportionally to
// their weights, using integer arithmetic only. The returned shares always sum
// to exactly totalMinor: each participant first receives floor(total*w/W), then
// the remaining minor units are handed out one at a time in input order,
// wrapping around the list. Given the same participant order the output is
// identical on every call.
//
// An empty participant list yields an empty result; callers that need a
// fallback (e.g. the sole actor pays 100%) apply it before calling. All-zero
// weights degrade to an equal split rather than dividing by zero. A negative
// total or weight is a contract violation and fails fast.
func SplitAmount(totalMinor int64, participants []Participant) ([]Share, error) {
	if totalMinor < 0 {
		return nil, fmt.Errorf("%w: split total must not be negative, got %d", apperrors.ErrInvalidAmount, totalMinor)
	}
	if len(participants) == 0 {
		return []Share{}, nil
	}

	weights := make([]int64, len(participants))
	var totalWeight int64
	for i, p := range participants {
		if p.Weight < 0 {
			return nil, fmt.Errorf("%w: weight for user %d must not be negative, got %d", apperrors.ErrInvalidWeight, p.UserID, p.Weight)
		}
		weights[i] = p.Weight
		totalWeight += p.Weight
	}
	if totalWeight <= 0 {
		// Nobody carries a positive weight; fall back to an equal split.
		for i := range weights {
			weights[i] = 1
		}
		totalWeight = int64(len(weights))
	}

	shares := make([]Share, len(participants))
	var distributed int64
	for i, p := range participants {
		amount := totalMinor * weights[i] / totalWeight
		shares[i] = Share{UserID: p.UserID, AmountMinor: amount}
		distributed += amount
	}

	remainder := totalMinor - distributed
	n := int64(len(shares))
	for i := int64(0); i < remainder; i++ {
		shares[i%n].AmountMinor++
	}

	return shares, nil
}
