package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)
	assert.Len(t, token, 64, "hex of 32 bytes = 64 chars")

	hexRegex := regexp.MustCompile(`^[0-9a-f]{64}$`)
	assert.True(t, hexRegex.MatchString(token), "token should be hex string")
}

func TestHashResetToken(t *testing.T) {
	h1 := HashResetToken("abc")
	h2 := HashResetToken("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, "abc", h1)
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h1)
}

func TestNewPasswordReset(t *testing.T) {
	user := &User{ID: 7, Email: "a@b.com"}
	reset, token, err := NewPasswordReset(user, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, uint(7), reset.UserID)
	assert.Equal(t, "a@b.com", reset.Email)
	assert.Equal(t, HashResetToken(token), reset.TokenHash)
	assert.NotEqual(t, token, reset.TokenHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), reset.ExpiresAt, 5*time.Second)
	assert.True(t, reset.IsValid())
}

func TestPasswordReset_IsExpired(t *testing.T) {
	now := time.Now()

	p := &PasswordReset{ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, p.IsExpired())

	p2 := &PasswordReset{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, p2.IsExpired())
}

func TestPasswordReset_IsValid(t *testing.T) {
	now := time.Now()

	// 有效
	p := &PasswordReset{Used: false, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, p.IsValid())

	// 无效：已使用
	p2 := &PasswordReset{Used: true, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, p2.IsValid())

	// 无效：已过期
	p3 := &PasswordReset{Used: false, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, p3.IsValid())
}
