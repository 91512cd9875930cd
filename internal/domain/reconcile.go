package domain

import (
	"context"

	"tagrade.dev/pkg/tagrade/internal/controller"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// Decider settles a disagreement between the stated and computed totals.
type Decider interface {
	AcceptComputedTotal(ctx context.Context, stated, computed int) (bool, error)
}

// Reconcile decides which total to record. A computed total equal to the
// stated one, or equal to zero, is accepted without asking. Otherwise the
// decider is consulted; declining keeps the stated total and skips the write.
func Reconcile(ctx context.Context, ledger m.Ledger, decider Decider) (total int, write bool, err error) {
	computed := ledger.ComputedTotal()
	if computed == ledger.StatedTotal || computed == 0 {
		return computed, true, nil
	}

	accept, err := decider.AcceptComputedTotal(ctx, ledger.StatedTotal, computed)
	if err != nil {
		return ledger.StatedTotal, false, err
	}

	if !accept {
		return ledger.StatedTotal, false, nil
	}

	return computed, true, nil
}

// uiDecider asks the operator through the UI.
type uiDecider struct {
	ui controller.UI
}

func (d uiDecider) AcceptComputedTotal(ctx context.Context, stated, computed int) (bool, error) {
	d.ui.DisplayDiscrepancy(ctx, stated, computed)

	return d.ui.Confirm(ctx, "Would you like me to fix that?")
}
