package finance

import "sort"

// DemoLedger returns the fixed ledger shown on the Financial HQ tab.
func DemoLedger() []LedgerEntry {
	return []LedgerEntry{
		{Category: "Rent", Type: Expense, Amount: 15000},
		{Category: "Salaries", Type: Expense, Amount: 25000},
		{Category: "Ads", Type: Expense, Amount: 5000},
		{Category: "Gym Memberships", Type: Income, Amount: 55000},
		{Category: "Personal Training", Type: Income, Amount: 30000},
		{Category: "Utilities", Type: Expense, Amount: 2000},
	}
}

// ComputeFinancials sums income and expense amounts. Entries of any other
// type are ignored.
func ComputeFinancials(entries []LedgerEntry) Financials {
	var f Financials
	for _, entry := range entries {
		switch entry.Type {
		case Income:
			f.TotalIncome += entry.Amount
		case Expense:
			f.TotalExpense += entry.Amount
		}
	}
	f.NetProfit = f.TotalIncome - f.TotalExpense
	return f
}

// Breakdown returns the entries of one type, largest amount first.
func Breakdown(entries []LedgerEntry, typ EntryType) []LedgerEntry {
	out := make([]LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == typ {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}
