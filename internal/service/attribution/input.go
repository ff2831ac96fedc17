package attribution

import (
	"time"

	"github.com/rfinnegan/donorlens/internal/domain"
)

// ResolveInput holds the signals the waterfall evaluates for one transaction.
type ResolveInput struct {
	Refcode          string
	TransactionDate  time.Time
	ClickID          *string
	FBClickID        *string
	ContributionForm *string
}

// Validate checks all fields and collects all errors.
func (i ResolveInput) Validate() error {
	var errs []domain.FieldError

	if i.TransactionDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "transaction_date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HasClickIdentifier reports whether any platform-issued click identifier
// is present.
func (i ResolveInput) HasClickIdentifier() bool {
	return (i.ClickID != nil && *i.ClickID != "") || (i.FBClickID != nil && *i.FBClickID != "")
}

// InputFromTransaction builds a ResolveInput from a stored transaction.
func InputFromTransaction(tx domain.Transaction) ResolveInput {
	return ResolveInput{
		Refcode:          tx.Refcode,
		TransactionDate:  tx.TransactionDate,
		ClickID:          tx.ClickID,
		FBClickID:        tx.FBClickID,
		ContributionForm: tx.ContributionForm,
	}
}

// SummaryInput holds the date range for an attribution quality summary.
type SummaryInput struct {
	From time.Time
	To   time.Time
}

// Validate checks all fields and collects all errors.
func (i SummaryInput) Validate() error {
	var errs []domain.FieldError

	if i.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if !i.From.IsZero() && !i.To.IsZero() && i.To.Before(i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not precede from"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
