package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service validates and acknowledges submitted transactions.
// Submissions are never appended to the ledger or sent anywhere.
type Service struct {
	validate *validator.Validate
	currency string
	newID    func() uuid.UUID
}

// NewService constructs a Service. Acknowledgements print the raw amount
// after the currency symbol, without digit grouping.
func NewService(currency string) *Service {
	return &Service{
		validate: validator.New(),
		currency: currency,
		newID:    uuid.New,
	}
}

// WithIDGenerator overrides acknowledgement IDs for testing.
func (s *Service) WithIDGenerator(fn func() uuid.UUID) {
	if fn != nil {
		s.newID = fn
	}
}

// Submit validates the form and returns the confirmation shown to the user.
func (s *Service) Submit(ctx context.Context, form TransactionForm) (Acknowledgement, error) {
	if err := ctx.Err(); err != nil {
		return Acknowledgement{}, err
	}
	form.Date = strings.TrimSpace(form.Date)
	form.Category = strings.TrimSpace(form.Category)
	form.Type = strings.TrimSpace(form.Type)
	form.Note = strings.TrimSpace(form.Note)

	if err := s.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Acknowledgement{}, err
		}
		vErr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
		for _, fieldErr := range fieldErrs {
			vErr.Fields[fieldErr.Field()] = fieldMessage(fieldErr)
		}
		return Acknowledgement{}, vErr
	}
	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		return Acknowledgement{}, &ValidationError{Fields: map[string]string{"Date": "enter a date as YYYY-MM-DD"}}
	}

	ack := Acknowledgement{
		ID:       s.newID(),
		Date:     date,
		Type:     EntryType(form.Type),
		Category: form.Category,
		Amount:   form.Amount,
		Note:     form.Note,
	}
	ack.Message = fmt.Sprintf("Saved: %s%d for %s (%s)", s.currency, ack.Amount, ack.Category, ack.Type)
	return ack, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "datetime":
		return "enter a date as YYYY-MM-DD"
	case "oneof":
		return "choose one of: " + fe.Param()
	case "gte":
		return "amount cannot be negative"
	case "max":
		return "keep the note under " + fe.Param() + " characters"
	default:
		return fe.Error()
	}
}
