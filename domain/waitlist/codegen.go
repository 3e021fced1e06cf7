package waitlist

import (
	"crypto/rand"
)

const (
	referralCodePrefix   = "ONE"
	referralCodeSuffix   = 6
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxRegisterAttempts bounds the regenerate-and-insert loop. The database
	// uniqueness constraint is the source of truth; this loop is a client-side
	// best effort on top of it.
	maxRegisterAttempts = 10
)

// NewReferralCode returns a candidate referral code: the "ONE" prefix followed
// by six characters drawn from [A-Z0-9]. Uniqueness is not guaranteed here;
// callers must rely on the storage constraint and retry on conflict.
func NewReferralCode() string {
	buf := make([]byte, referralCodeSuffix)
	rand.Read(buf)

	code := make([]byte, 0, len(referralCodePrefix)+referralCodeSuffix)
	code = append(code, referralCodePrefix...)
	for _, b := range buf {
		code = append(code, referralCodeAlphabet[int(b)%len(referralCodeAlphabet)])
	}

	return string(code)
}
