package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interest segments an entrant can sign up for.
const (
	InterestShopping = "shopping"
	InterestFood     = "food"
	InterestPayments = "payments"
	InterestAll      = "all"
)

// Subscription tiers
const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// EarlyAccessSpots is the number of waitlist positions that qualify for early access.
const EarlyAccessSpots = 1000

// ReferralRewardThreshold is the number of referrals needed for rewards eligibility.
const ReferralRewardThreshold = 5

// DefaultSignupSource is recorded when no explicit source is provided.
const DefaultSignupSource = "website"

// WaitlistEntrant is a single waitlist signup. Entrants are append-only: there
// are no update or delete paths, so waitlist_position and early_access never
// change after creation. Uniqueness of email, referral_code and
// waitlist_position is enforced at the database level.
type WaitlistEntrant struct {
	ID               string    `gorm:"type:text;primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Email            string    `gorm:"not null;uniqueIndex" json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Interest         string    `gorm:"not null;default:all" json:"interest"`
	ReferralCode     string    `gorm:"not null;uniqueIndex" json:"referral_code"`
	ReferredBy       string    `gorm:"index" json:"referred_by,omitempty"`
	WaitlistPosition int64     `gorm:"not null;uniqueIndex" json:"waitlist_position"`
	EarlyAccess      bool      `gorm:"not null;default:false" json:"early_access"`
	EmailVerified    bool      `gorm:"not null;default:false" json:"email_verified"`
	Subscription     string    `gorm:"not null;default:free" json:"subscription"`
	SignupIP         string    `json:"-"`
	UserAgent        string    `json:"-"`
	SignupSource     string    `gorm:"default:website" json:"signup_source"`
	CreatedAt        time.Time `gorm:"not null;index" json:"created_at"`
}

func (e *WaitlistEntrant) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// ValidInterest reports whether v is one of the enumerated interest values.
func ValidInterest(v string) bool {
	switch v {
	case InterestShopping, InterestFood, InterestPayments, InterestAll:
		return true
	}
	return false
}
