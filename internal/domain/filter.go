package domain

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Type             *TransactionType
	UnattributedOnly bool
	Limit            int
}
