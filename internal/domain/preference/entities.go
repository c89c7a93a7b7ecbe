package preference

import (
	"math"
	"strings"

	"grynvault-backend/internal/domain/apperr"
)

type Custody string

const (
	CustodySelf       Custody = "self"
	CustodyThirdParty Custody = "third-party"
)

func (c Custody) Valid() bool { return c == CustodySelf || c == CustodyThirdParty }

type KYC string

const (
	KYCRequired    KYC = "required"
	KYCNotRequired KYC = "not-required"
)

func (k KYC) Valid() bool { return k == KYCRequired || k == KYCNotRequired }

// LiquidationRisk "no" selects the white-glove, cross-collateralized variant.
type LiquidationRisk string

const (
	LiquidationYes LiquidationRisk = "yes"
	LiquidationNo  LiquidationRisk = "no"
)

func (l LiquidationRisk) Valid() bool { return l == LiquidationYes || l == LiquidationNo }

type BTCChain string

const (
	ChainL1      BTCChain = "L1"
	ChainBridged BTCChain = "bridged"
)

func (b BTCChain) Valid() bool { return b == ChainL1 || b == ChainBridged }

type WalletType string

const (
	WalletOwn       WalletType = "own wallet"
	WalletBrowser   WalletType = "browser wallet"
	WalletMultisig  WalletType = "multisig"
	WalletCustodial WalletType = "custodial"
)

func (w WalletType) Valid() bool {
	switch w {
	case WalletOwn, WalletBrowser, WalletMultisig, WalletCustodial:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyUSDC Currency = "USDC"
	CurrencyUSDT Currency = "USDT"
	CurrencyDAI  Currency = "DAI"
	CurrencyEUR  Currency = "EUR"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyUSDC, CurrencyUSDT, CurrencyDAI, CurrencyEUR:
		return true
	}
	return false
}

// Input bounds enforced at the form boundary.
const (
	MinLoanAmount = 5000
	MinLTV        = 30
	MaxLTV        = 80
	MinUserRate   = 4.0
	MaxUserRate   = 15.0
	UserRateStep  = 0.5
)

// TermOptions lists the accepted loan terms in days.
var TermOptions = []int{30, 90, 180, 365}

func ValidTerm(days int) bool {
	for _, d := range TermOptions {
		if d == days {
			return true
		}
	}
	return false
}

// Preference is one borrower submission. It is a value: copy it, never mutate a shared one.
type Preference struct {
	LoanAmount      float64         `json:"loanAmount"`
	LTV             int             `json:"ltv"`
	TermDays        int             `json:"termDays"`
	Custody         Custody         `json:"custody"`
	KYC             KYC             `json:"kyc"`
	LiquidationRisk LiquidationRisk `json:"liquidationRisk"`
	BTCChain        BTCChain        `json:"btcChain"`
	WalletType      WalletType      `json:"walletType"`
	Currency        Currency        `json:"currency"`
	UserRate        float64         `json:"userRate"`
	Email           string          `json:"email"`
}

// Default returns the configurator's initial state. Email is left empty.
func Default() Preference {
	return Preference{
		LoanAmount:      50000,
		LTV:             60,
		TermDays:        90,
		Custody:         CustodySelf,
		KYC:             KYCNotRequired,
		LiquidationRisk: LiquidationYes,
		BTCChain:        ChainL1,
		WalletType:      WalletOwn,
		Currency:        CurrencyUSDC,
		UserRate:        7,
	}
}

// Validate reports every violated field at once.
func (p Preference) Validate() error { return p.validate(true) }

// ValidateTerms checks the loan terms only; previews are shown before an email is known.
func (p Preference) ValidateTerms() error { return p.validate(false) }

func (p Preference) validate(withEmail bool) error {
	var out []apperr.FieldError
	add := func(field, msg string) { out = append(out, apperr.FieldError{Field: field, Message: msg}) }

	if p.LoanAmount < MinLoanAmount {
		add("loanAmount", "must be greater than or equal to 5000")
	}
	if p.LTV < MinLTV || p.LTV > MaxLTV {
		add("ltv", "must be between 30 and 80")
	}
	if !ValidTerm(p.TermDays) {
		add("termDays", "must be one of 30, 90, 180, 365")
	}
	if !p.Custody.Valid() {
		add("custody", "must be self or third-party")
	}
	if !p.KYC.Valid() {
		add("kyc", "must be required or not-required")
	}
	if !p.LiquidationRisk.Valid() {
		add("liquidationRisk", "must be yes or no")
	}
	if !p.BTCChain.Valid() {
		add("btcChain", "must be L1 or bridged")
	}
	if !p.WalletType.Valid() {
		add("walletType", "must be one of own wallet, browser wallet, multisig, custodial")
	}
	if !p.Currency.Valid() {
		add("currency", "must be one of USD, USDC, USDT, DAI, EUR")
	}
	if p.UserRate < MinUserRate || p.UserRate > MaxUserRate || !onRateStep(p.UserRate) {
		add("userRate", "must be between 4 and 15 in steps of 0.5")
	}
	if withEmail && strings.TrimSpace(p.Email) == "" {
		add("email", "is required")
	}

	if len(out) > 0 {
		return apperr.Validation("preference.Validate", out)
	}
	return nil
}

func onRateStep(r float64) bool {
	q := r / UserRateStep
	return math.Abs(q-math.Round(q)) < 1e-9
}
