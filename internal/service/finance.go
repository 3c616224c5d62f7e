package service

// Recompute derives the dependent financial fields from the three inputs:
// total is fee plus cost, balance is total minus paid. Balance goes
// negative on overpayment; the sign only matters for display.
func Recompute(fee, cost, paid float64) (total, balance float64) {
	total = fee + cost
	balance = total - paid
	return total, balance
}
