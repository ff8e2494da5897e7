// Read models for the monitored business tables. These schemas are owned
// and mutated by the platform's CRUD modules; the engine only reads the
// columns below. They are included in AutoMigrate so that dev and test
// databases can be bootstrapped without the rest of the platform.
package domain

import "time"

// Firm is the owning company for every monitored record. Only the name is
// read here, for message rendering.
type Firm struct {
	ID   string `gorm:"type:char(36);primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Firm.
func (Firm) TableName() string { return "firms" }

// License is a trade or operating license with an expiry date.
// Excluded statuses: revoked, surrendered.
type License struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	FirmID      string    `gorm:"type:char(36);not null;index"`
	LicenseType string    `gorm:"type:varchar(128);not null"`
	ExpiryDate  time.Time `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(32);not null;default:'active'"`
}

// TableName returns the database table name for License.
func (License) TableName() string { return "licenses" }

// Enlistment is a contractor enlistment with a government body, renewable
// before its validity date. Excluded statuses: cancelled, lapsed.
type Enlistment struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	FirmID       string    `gorm:"type:char(36);not null;index"`
	Authority    string    `gorm:"type:varchar(128);not null"`
	ValidityDate time.Time `gorm:"not null;index"`
	Status       string    `gorm:"type:varchar(32);not null;default:'active'"`
}

// TableName returns the database table name for Enlistment.
func (Enlistment) TableName() string { return "enlistments" }

// BankGuarantee backs a tender or contract and must be extended or
// released before expiry. Excluded statuses: released, encashed.
type BankGuarantee struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	FirmID     string    `gorm:"type:char(36);not null;index"`
	BankName   string    `gorm:"type:varchar(128);not null"`
	ExpiryDate time.Time `gorm:"not null;index"`
	Status     string    `gorm:"type:varchar(32);not null;default:'active'"`
}

// TableName returns the database table name for BankGuarantee.
func (BankGuarantee) TableName() string { return "bank_guarantees" }

// TaxObligation is one filing cycle of a periodic tax duty. The owning
// module creates one row per period, so the row id distinguishes cycles.
// Excluded statuses: filed, paid.
type TaxObligation struct {
	ID      string    `gorm:"type:char(36);primaryKey"`
	FirmID  string    `gorm:"type:char(36);not null;index"`
	TaxType string    `gorm:"type:varchar(64);not null"`
	Period  string    `gorm:"type:varchar(32);not null"`
	DueDate time.Time `gorm:"not null;index"`
	Status  string    `gorm:"type:varchar(32);not null;default:'due'"`
}

// TableName returns the database table name for TaxObligation.
func (TaxObligation) TableName() string { return "tax_obligations" }

// LoanInstallment is one repayment cycle of a firm loan, one row per
// installment. Excluded statuses: paid, waived.
type LoanInstallment struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	FirmID    string    `gorm:"type:char(36);not null;index"`
	LoanRef   string    `gorm:"type:varchar(64);not null"`
	DueDate   time.Time `gorm:"not null;index"`
	AmountDue float64   `gorm:"not null"`
	Status    string    `gorm:"type:varchar(32);not null;default:'due'"`
}

// TableName returns the database table name for LoanInstallment.
func (LoanInstallment) TableName() string { return "loan_installments" }

// Tender is a bid opportunity with a submission deadline.
// Excluded statuses: submitted, cancelled, awarded.
type Tender struct {
	ID                 string    `gorm:"type:char(36);primaryKey"`
	FirmID             string    `gorm:"type:char(36);not null;index"`
	Title              string    `gorm:"type:varchar(255);not null"`
	SubmissionDeadline time.Time `gorm:"not null;index"`
	Status             string    `gorm:"type:varchar(32);not null;default:'open'"`
}

// TableName returns the database table name for Tender.
func (Tender) TableName() string { return "tenders" }
