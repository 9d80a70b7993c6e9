package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pedidos/internal/http/auth"
)

func TestNewVerifier_EmptySecretDisablesAuth(t *testing.T) {
	assert.Nil(t, auth.NewVerifier("  ", "pedidos"))
}

func TestVerifier_IssueAndVerify(t *testing.T) {
	verifier := auth.NewVerifier("segredo", "pedidos")
	require.NotNil(t, verifier)

	type testCase struct {
		name    string
		token   func(t *testing.T) string
		wantErr bool
	}

	issue := func(v *auth.Verifier, ttl time.Duration) func(t *testing.T) string {
		return func(t *testing.T) string {
			token, err := v.Issue("loja", ttl)
			require.NoError(t, err)

			return token
		}
	}

	tests := []testCase{
		{name: "Valid", token: issue(verifier, time.Hour)},
		{name: "Expired", token: issue(verifier, -time.Minute), wantErr: true},
		{name: "Other Secret", token: issue(auth.NewVerifier("outro", "pedidos"), time.Hour), wantErr: true},
		{name: "Other Issuer", token: issue(auth.NewVerifier("segredo", "outra-loja"), time.Hour), wantErr: true},
		{name: "Missing", token: func(*testing.T) string { return "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.Verify(tt.token(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "loja", claims.Subject)
			assert.Equal(t, "pedidos", claims.Issuer)
		})
	}
}
