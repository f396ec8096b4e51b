package domain

import "time"

// AccountType classifies a ledger account bucket.
type AccountType string

const (
	AccountTypeFuel      AccountType = "FUEL"
	AccountTypeBank      AccountType = "BANK"
	AccountTypeCash      AccountType = "CASH"
	AccountTypeSupplier  AccountType = "SUPPLIER"
	AccountTypeCustomer  AccountType = "CUSTOMER"
	AccountTypeExpense   AccountType = "EXPENSE"
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
)

// Account is a named ledger bucket. Accounts are never physically deleted
// in normal operation; deactivation flips Active to false.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Number    string // optional, unique when set
	Active    bool
	CreatedAt time.Time
}
