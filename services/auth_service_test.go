// file: services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-holo-council/models"
	"go-holo-council/store"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	doc := models.DefaultDocument()
	doc.Operators = map[string]string{
		models.AdminUsername: "4545",
		"misa":               "1111",
	}
	doc.DisplayNames = map[string]string{"misa": "Misa"}
	require.NoError(t, st.ReplaceAll(doc))

	return NewAuthService(st)
}

func TestAuthenticate_Success(t *testing.T) {
	svc := newAuthFixture(t)

	identity, err := svc.Authenticate("misa", "1111")

	require.NoError(t, err)
	assert.Equal(t, "misa", identity.Username)
	assert.Equal(t, "Misa", identity.DisplayName)
	assert.False(t, identity.IsPrivileged)
}

func TestAuthenticate_CaseAndWhitespaceInsensitiveUsername(t *testing.T) {
	svc := newAuthFixture(t)

	identity, err := svc.Authenticate("  MiSa ", "1111")

	require.NoError(t, err)
	assert.Equal(t, "misa", identity.Username)
}

func TestAuthenticate_CodeIsExact(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Authenticate("misa", "1111 ")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Authenticate("misa", "111")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_UnknownOperator(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Authenticate("ghost", "1111")

	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_AdminIsPrivileged(t *testing.T) {
	svc := newAuthFixture(t)

	identity, err := svc.Authenticate("admin", "4545")

	require.NoError(t, err)
	assert.True(t, identity.IsPrivileged)
}
