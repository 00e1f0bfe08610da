// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setrini/inmobiliaria/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "setrini.test")

	token, err := service.GenerateAccessToken("admin-1", "marile@example.com", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "marile@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, sec.RoleAdmin, claims.AdminRole())
	assert.NotEmpty(t, claims.ID)
}

/*
TestNewTokenService_FromFiles loads PEM keys from disk and reports missing files.
*/
func TestNewTokenService_FromFiles(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}), 0o600))
	require.NoError(t, os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER}), 0o644))

	service, err := sec.NewTokenService(privatePath, publicPath, "setrini.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("admin-1", "a@b.c", "editor", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(token)
	assert.NoError(t, err)

	_, err = sec.NewTokenService(filepath.Join(dir, "missing.pem"), publicPath, "setrini.test")
	assert.ErrorContains(t, err, "sec_key_read_failed")
}

/*
TestTokenService_Rejects covers expiry, foreign keys and foreign issuers.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "setrini.test")

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("admin-1", "a@b.c", "admin", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("other_key", func(t *testing.T) {
		other := newTokenService(t, "setrini.test")
		token, err := other.GenerateAccessToken("admin-1", "a@b.c", "admin", time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("other_issuer", func(t *testing.T) {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		issuerA := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "a")
		issuerB := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "b")

		token, err := issuerA.GenerateAccessToken("admin-1", "a@b.c", "admin", time.Minute)
		require.NoError(t, err)

		_, err = issuerB.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("hmac_algorithm", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				Issuer:    "setrini.test",
				Audience:  jwt.ClaimStrings{"backoffice"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
			UserID: "admin-1",
			Role:   "admin",
		})
		token, err := forged.SignedString([]byte("guessable"))
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.jwt")
		assert.Error(t, err)
	})
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))

	assert.NotPanics(t, func() { sec.SpendPasswordCheck("anything") })
}

/*
TestSecureToken checks tokens are unique and their hashes are stable.
*/
func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.Len(t, sec.HashToken(first), 64)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleEditor.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("member").AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("").Valid())
}
