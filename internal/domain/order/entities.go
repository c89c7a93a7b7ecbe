package order

import (
	"time"

	"grynvault-backend/internal/domain/preference"
)

// Kind says which side of the book a record sits on.
type Kind string

const (
	KindDemand Kind = "demand" // borrower loan request
	KindSupply Kind = "supply" // lender offer
)

func (k Kind) Valid() bool { return k == KindDemand || k == KindSupply }

// Table is the collection a kind is stored in.
func (k Kind) Table() string {
	if k == KindSupply {
		return "lender_offers"
	}
	return "loan_requests"
}

// StoredStatus is the status as persisted.
type StoredStatus string

const (
	StoredActive    StoredStatus = "active"
	StoredMatched   StoredStatus = "matched"
	StoredCancelled StoredStatus = "cancelled"
)

// Record is one row of loan_requests or lender_offers. Both tables share the shape.
// Rows are append-only from this service; status changes happen out-of-band.
type Record struct {
	ID              uint64                     `gorm:"primaryKey;column:id" json:"-"`
	OrderID         string                     `gorm:"column:order_id;size:32;uniqueIndex" json:"orderId"`
	LoanAmount      float64                    `gorm:"column:loan_amount;type:decimal(18,2)" json:"loanAmount"`
	LTV             int                        `gorm:"column:ltv" json:"ltv"`
	TermDays        int                        `gorm:"column:term_days" json:"termDays"`
	Custody         preference.Custody         `gorm:"column:custody;size:16" json:"custody"`
	KYC             preference.KYC             `gorm:"column:kyc;size:16" json:"kyc"`
	LiquidationRisk preference.LiquidationRisk `gorm:"column:liquidation_risk;size:8" json:"liquidationRisk"`
	BTCChain        preference.BTCChain        `gorm:"column:btc_chain;size:16" json:"btcChain"`
	WalletType      preference.WalletType      `gorm:"column:wallet_type;size:32" json:"walletType"`
	Currency        preference.Currency        `gorm:"column:currency;size:8" json:"currency"`
	UserRate        float64                    `gorm:"column:user_rate;type:decimal(5,2)" json:"userRate"`
	Email           string                     `gorm:"column:email;size:255" json:"email,omitempty"`
	Status          StoredStatus               `gorm:"column:status;size:16;default:active;index" json:"status"`
	CreatedAt       time.Time                  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// RecordFromPreference snapshots a submitted preference into a new active record.
func RecordFromPreference(p preference.Preference) *Record {
	return &Record{
		LoanAmount:      p.LoanAmount,
		LTV:             p.LTV,
		TermDays:        p.TermDays,
		Custody:         p.Custody,
		KYC:             p.KYC,
		LiquidationRisk: p.LiquidationRisk,
		BTCChain:        p.BTCChain,
		WalletType:      p.WalletType,
		Currency:        p.Currency,
		UserRate:        p.UserRate,
		Email:           p.Email,
		Status:          StoredActive,
	}
}

// Preference rebuilds the borrower inputs a record was created from.
func (r Record) Preference() preference.Preference {
	return preference.Preference{
		LoanAmount:      r.LoanAmount,
		LTV:             r.LTV,
		TermDays:        r.TermDays,
		Custody:         r.Custody,
		KYC:             r.KYC,
		LiquidationRisk: r.LiquidationRisk,
		BTCChain:        r.BTCChain,
		WalletType:      r.WalletType,
		Currency:        r.Currency,
		UserRate:        r.UserRate,
		Email:           r.Email,
	}
}

// Status is the display status of a projected order.
type Status string

const (
	StatusOpen      Status = "open"
	StatusMatched   Status = "matched"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusMatched || s == StatusCancelled
}

// Order is the read-only orderbook view of one record.
type Order struct {
	ID                string              `json:"id"`
	OrderID           string              `json:"orderId"`
	Type              Kind                `json:"type"`
	Amount            float64             `json:"amount"`
	ThirdPartyCustody bool                `json:"thirdPartyCustody"`
	KYCRequired       bool                `json:"kycRequired"`
	LTV               int                 `json:"ltv"`
	TermDays          int                 `json:"termDays"`
	LiquidationRisk   bool                `json:"liquidationRisk"`
	BTCChain          preference.BTCChain `json:"btcChain"`
	WalletType        string              `json:"walletType"`
	Currency          string              `json:"currency"`
	APR               float64             `json:"apr"`
	Timestamp         time.Time           `json:"timestamp"`
	Status            Status              `json:"status"`
}
