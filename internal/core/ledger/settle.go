package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Settlement is a single directed payment instruction produced by the debt
// netting pass: FromUserID pays ToUserID the (positive) Amount.
type Settlement struct {
	FromUserID int64
	ToUserID   int64
	Amount     decimal.Decimal
}

// MinorSettlement is the integer minor-unit form of a Settlement, used by the
// workspace-ledger path where balances are kept in minor units throughout.
type MinorSettlement struct {
	FromUserID  int64
	ToUserID    int64
	AmountMinor int64
}

type party struct {
	userID int64
	amount decimal.Decimal
}

// Simplify converts a map of signed net balances (positive = is owed,
// negative = owes) into a list of payments that nets every balance to zero,
// working at 2-decimal precision.
//
// Debtors and creditors are matched greedily with two cursors after sorting
// both sides by ascending user id, so the output is identical regardless of
// the map's iteration order. If total debt and total credit disagree because
// of upstream rounding drift, the unmatched remainder is simply left
// unsettled; that is the caller's condition to observe, not an error.
func Simplify(balances map[int64]decimal.Decimal) []Settlement {
	var debtors, creditors []party
	for userID, balance := range balances {
		switch {
		case balance.IsNegative():
			debtors = append(debtors, party{userID: userID, amount: balance.Neg()})
		case balance.IsPositive():
			creditors = append(creditors, party{userID: userID, amount: balance})
		}
	}
	sort.Slice(debtors, func(a, b int) bool { return debtors[a].userID < debtors[b].userID })
	sort.Slice(creditors, func(a, b int) bool { return creditors[a].userID < creditors[b].userID })

	settlements := []Settlement{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debt := debtors[i].amount
		credit := creditors[j].amount
		amount := Quantize2(decimal.Min(debt, credit))
		if amount.IsZero() {
			// Sub-cent residue; skip the exhausted side so the loop advances.
			if debt.LessThanOrEqual(credit) {
				i++
			} else {
				j++
			}
			continue
		}
		settlements = append(settlements, Settlement{
			FromUserID: debtors[i].userID,
			ToUserID:   creditors[j].userID,
			Amount:     amount,
		})
		debtors[i].amount = Quantize2(debt.Sub(amount))
		creditors[j].amount = Quantize2(credit.Sub(amount))
		if debtors[i].amount.IsZero() {
			i++
		}
		if creditors[j].amount.IsZero() {
			j++
		}
	}
	return settlements
}

// SimplifyMinor runs the same greedy netting over integer minor-unit balances.
func SimplifyMinor(balances map[int64]int64) []MinorSettlement {
	type minorParty struct {
		userID int64
		amount int64
	}
	var debtors, creditors []minorParty
	for userID, balance := range balances {
		switch {
		case balance < 0:
			debtors = append(debtors, minorParty{userID: userID, amount: -balance})
		case balance > 0:
			creditors = append(creditors, minorParty{userID: userID, amount: balance})
		}
	}
	sort.Slice(debtors, func(a, b int) bool { return debtors[a].userID < debtors[b].userID })
	sort.Slice(creditors, func(a, b int) bool { return creditors[a].userID < creditors[b].userID })

	settlements := []MinorSettlement{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}
		if amount > 0 {
			settlements = append(settlements, MinorSettlement{
				FromUserID:  debtors[i].userID,
				ToUserID:    creditors[j].userID,
				AmountMinor: amount,
			})
		}
		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return settlements
}
