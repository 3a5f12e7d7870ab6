package models

type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// CreatesExpense reports whether a purchase in this status carries a linked
// EXPENSE transaction. PENDING and CANCELLED purchases have no financial
// projection until they are paid.
func (s PaymentStatus) CreatesExpense() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPartial
}

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

type ExpiryStatus string

const (
	ExpiryStatusExpired      ExpiryStatus = "EXPIRED"
	ExpiryStatusExpiringSoon ExpiryStatus = "EXPIRING_SOON"
	ExpiryStatusNormal       ExpiryStatus = "NORMAL"
)
