package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "orange-volcano-telescope",
			wantErr:  nil,
		},
		{
			name:     "too short",
			password: "abc",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "exactly below minimum",
			password: "elevenchars",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "too long for bcrypt",
			password: string(make([]byte, 80)),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "contains common pattern",
			password: "mypassword12345",
			wantErr:  ErrPasswordTooCommon,
		},
		{
			name:     "common pattern in mixed case",
			password: "SuperQWERTYkeyboard",
			wantErr:  ErrPasswordTooCommon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
