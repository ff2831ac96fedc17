package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes donations from refunds.
type TransactionType string

const (
	TransactionDonation TransactionType = "DONATION"
	TransactionRefund   TransactionType = "REFUND"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDonation, TransactionRefund:
		return true
	}
	return false
}

// Transaction is a settled donation event ingested from the payment
// processor. Once settled it is immutable; attribution metadata is attached
// separately and never rewrites the original record.
type Transaction struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	Type             TransactionType
	AmountCents      int64
	NetAmountCents   int64
	FeeCents         int64
	TransactionDate  time.Time
	DonorID          string // hashed email or phone
	Refcode          string // free text, may be empty or malformed
	ClickID          *string
	FBClickID        *string
	ContributionForm *string
	IsRecurring      bool
	RecurringState   *string
	CreatedAt        time.Time
}

// HasClickIdentifier reports whether the transaction carries any
// platform-issued click identifier.
func (t *Transaction) HasClickIdentifier() bool {
	return (t.ClickID != nil && *t.ClickID != "") || (t.FBClickID != nil && *t.FBClickID != "")
}
