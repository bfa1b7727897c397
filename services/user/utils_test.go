package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "hunter2hunter2", false},
		{"valid with digit", "sup3rsecret", false},
		{"too short", "ab1", true},
		{"digits only", "12345678", true},
		{"letters only", "abcdefgh", true},
		{"exactly eight", "abcdef12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPasswordComplexity(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
