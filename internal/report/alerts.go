package report

import (
	"fmt"

	"finledger/internal/core"
)

// nearLimitNum/nearLimitDen express the 80% warning threshold in
// integer math so the boundary is exact at any amount.
const (
	nearLimitNum = 4
	nearLimitDen = 5
)

// CheckAlerts compares each budget against the category's expense total
// for the given year+month.
//
// Spending strictly above the limit raises OverBudget with the excess;
// spending at or above 80% of the limit (including spending exactly
// equal to the limit) raises NearLimit with a zero OverAmount. A
// budgeted category with no spending in the month raises nothing.
// Alerts come out in the order the budgets were passed in.
func CheckAlerts(txns []core.Transaction, budgets []core.Budget, year, month int) ([]core.BudgetAlert, error) {
	if !core.ValidMonth(month) {
		return nil, fmt.Errorf("month %d: %w", month, core.ErrInvalidMonth)
	}

	spent := make(map[string]core.Money)
	for _, t := range txns {
		if t.Type != core.Expense {
			continue
		}
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		spent[t.Category] = spent[t.Category].Add(t.Amount)
	}

	var alerts []core.BudgetAlert
	for _, b := range budgets {
		spending, ok := spent[b.Category]
		if !ok || spending.Cents == 0 {
			continue
		}
		limit := b.MonthlyLimit

		switch {
		case spending.Cents > limit.Cents:
			alerts = append(alerts, core.BudgetAlert{
				Category:       b.Category,
				BudgetLimit:    limit,
				ActualSpending: spending,
				OverAmount:     spending.Sub(limit),
				Level:          core.OverBudget,
			})
		case spending.Cents*nearLimitDen >= limit.Cents*nearLimitNum:
			alerts = append(alerts, core.BudgetAlert{
				Category:       b.Category,
				BudgetLimit:    limit,
				ActualSpending: spending,
				Level:          core.NearLimit,
			})
		}
	}
	return alerts, nil
}
