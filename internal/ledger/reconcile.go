package ledger

// Sum totals a collection of payment amounts. A nil collection (payments not
// eagerly loaded) is treated as empty.
func Sum(payments []Amount) Amount {
	var total Amount
	for _, p := range payments {
		total += p
	}
	return total
}

// Remaining computes the outstanding balance on an order:
// total minus the sum of recorded payments.
//
// The result is intended to be non-negative under correct operation, but may
// go negative when an overpayment has been recorded; callers decide policy.
// Pure computation, never fails.
func Remaining(total Amount, payments []Amount) Amount {
	return total - Sum(payments)
}

// Reconciliation is the full balance picture for one order.
type Reconciliation struct {
	Total     Amount
	Paid      Amount
	Remaining Amount
}

// Overpaid reports whether recorded payments exceed the order total beyond
// the float tolerance.
func (r Reconciliation) Overpaid() bool {
	return r.Remaining < -Tolerance
}

// Settled reports whether the outstanding balance is zero within tolerance.
func (r Reconciliation) Settled() bool {
	return r.Remaining <= Tolerance && r.Remaining >= -Tolerance
}

// Reconcile computes the balance picture for an order total and its payments.
func Reconcile(total Amount, payments []Amount) Reconciliation {
	paid := Sum(payments)
	return Reconciliation{
		Total:     total,
		Paid:      paid,
		Remaining: total - paid,
	}
}

// Exceeds reports whether a proposed payment amount would push the remaining
// balance negative beyond tolerance. Used by the submission guard: exceeding
// triggers an overpayment warning, not a hard rejection.
func Exceeds(amount, remaining Amount) bool {
	return amount > remaining+Tolerance
}
