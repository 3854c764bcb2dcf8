package domain

// Loan application workflow states.
const (
	StatePendingIdentity     = "pending_identity"
	StatePendingUnderwriting = "pending_underwriting"
	StateDenied              = "denied"
	StateApproved            = "approved"
	StateConfirmed           = "confirmed"

	// NextStepIdentity is the only step a freshly created application can be routed to.
	NextStepIdentity = "identity"

	// OriginationCurrency is the single currency loan intake accepts today.
	OriginationCurrency = "usd"
)

// SupportedCurrencies is the generic currency allow-list (lowercase ISO 4217).
var SupportedCurrencies = map[string]struct{}{
	"usd": {},
	"cad": {},
	"gbp": {},
	"eur": {},
}

// Default merchant seeded on startup when enabled.
const (
	DefaultMerchantName          = "Zelda's Stationary"
	DefaultMerchantMinimumAmount = "100.00"
	DefaultMerchantMaximumAmount = "3000.00"
)
