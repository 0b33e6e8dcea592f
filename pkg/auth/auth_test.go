package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

func newAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	db, err := database.InitDB(database.Options{Path: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	return &Authenticator{DB: db, Secret: []byte("test-secret"), Cost: bcrypt.MinCost}
}

func TestLoginFlow(t *testing.T) {
	a := newAuthenticator(t)

	created, err := a.EnsureAdminExists("operator", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = a.EnsureAdminExists("other", "x")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = a.Login("operator", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := a.Login("operator", "s3cret")
	require.NoError(t, err)
	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)

	require.NoError(t, a.SetPassword("operator", "new"))
	_, err = a.Login("operator", "new")
	assert.NoError(t, err)
	assert.ErrorIs(t, a.SetPassword("nobody", "x"), ErrInvalidCredentials)
}

func TestVerifyTokenRejects(t *testing.T) {
	a := newAuthenticator(t)
	other := &Authenticator{Secret: []byte("different")}
	token, err := other.CreateToken("operator")
	require.NoError(t, err)
	_, err = a.VerifyToken(token)
	assert.Error(t, err)

	expired := &Authenticator{Secret: a.Secret, TTL: -time.Minute}
	token, err = expired.CreateToken("operator")
	require.NoError(t, err)
	_, err = a.VerifyToken(token)
	assert.Error(t, err)
}
