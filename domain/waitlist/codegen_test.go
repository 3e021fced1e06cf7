package waitlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReferralCode(t *testing.T) {
	t.Run("matches the public code format", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := NewReferralCode()
			assert.Regexp(t, `^ONE[A-Z0-9]{6}$`, code)
		}
	})

	t.Run("successive codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			seen[NewReferralCode()] = true
		}
		// 36^6 possible suffixes; 100 draws colliding down to a handful would
		// indicate a broken generator, not bad luck.
		assert.Greater(t, len(seen), 95)
	})
}
