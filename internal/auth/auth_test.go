package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthcouncil/internal/model"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	u := &model.User{ID: 42, Email: "ada@example.com", Role: model.RoleAdmin}

	token, err := m.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.True(t, session.IsAdmin())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.Issue(&model.User{ID: 1, Email: "a@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionIsAdmin(t *testing.T) {
	assert.False(t, (*Session)(nil).IsAdmin())
	assert.False(t, (&Session{Role: model.RoleUser}).IsAdmin())
	assert.True(t, (&Session{Role: model.RoleAdmin}).IsAdmin())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}
