package finance

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntryType separates money coming in from money going out.
type EntryType string

// Ledger entry types.
const (
	Income  EntryType = "Income"
	Expense EntryType = "Expense"
)

// EntryTypes lists the types offered by the transaction form.
var EntryTypes = []EntryType{Expense, Income}

// FormCategories lists the categories offered by the transaction form.
var FormCategories = []string{"Rent", "Salaries", "Ads", "Utilities", "Sales", "Consulting"}

// AmountStep is the increment suggested to the amount input.
const AmountStep = 100

var (
	// ErrInvalidTransaction marks a rejected transaction form.
	ErrInvalidTransaction = errors.New("finance: invalid transaction")
)

// LedgerEntry is one income or expense line of the demo ledger.
type LedgerEntry struct {
	Category string    `json:"category"`
	Type     EntryType `json:"type"`
	Amount   int64     `json:"amount"`
}

// Financials aggregates a ledger.
type Financials struct {
	TotalIncome  int64
	TotalExpense int64
	NetProfit    int64
}

// TransactionForm carries a manually submitted income or expense line.
type TransactionForm struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	Type     string `validate:"required,oneof=Expense Income"`
	Category string `validate:"required,oneof=Rent Salaries Ads Utilities Sales Consulting"`
	Amount   int64  `validate:"gte=0"`
	Note     string `validate:"max=280"`
}

// Acknowledgement confirms a submitted transaction. Nothing is stored.
type Acknowledgement struct {
	ID       uuid.UUID
	Date     time.Time
	Type     EntryType
	Category string
	Amount   int64
	Note     string
	Message  string
}

// ValidationError reports per-field problems with a transaction form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", ErrInvalidTransaction, strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTransaction
}
