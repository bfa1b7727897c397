package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureOTPLength(t *testing.T) {
	for _, length := range []int{4, 6, 8, 10} {
		otp, err := generateSecureOTP(length)
		require.NoError(t, err)
		assert.Len(t, otp, length)
	}
}

func TestGenerateSecureOTPVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := generateSecureOTP(6)
		require.NoError(t, err)
		seen[otp] = true
	}
	// Collisions across 20 draws of a 6-char base32 code would indicate a
	// broken source of randomness.
	assert.Greater(t, len(seen), 15)
}
