package models

// RiskAppetite is the investor profile a user picks during onboarding.
type RiskAppetite string

const (
	RiskAppetiteConservative RiskAppetite = "conservative"
	RiskAppetiteModerate     RiskAppetite = "moderate"
	RiskAppetiteAggressive   RiskAppetite = "aggressive"
)

// Valid reports whether r is a known risk appetite.
func (r RiskAppetite) Valid() bool {
	switch r {
	case RiskAppetiteConservative, RiskAppetiteModerate, RiskAppetiteAggressive:
		return true
	}
	return false
}

// Profile mirrors the auth user. Its ID is the subject of the access token,
// so it is never generated locally.
type Profile struct {
	Base
	Email        string       `gorm:"index" json:"email"`
	FullName     string       `json:"full_name"`
	Currency     string       `gorm:"size:3;not null;default:'INR'" json:"currency"`
	RiskAppetite RiskAppetite `gorm:"not null;default:'moderate'" json:"risk_appetite"`
}
