package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garagehub/garage_services/internal/adapter/memory"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	users      map[string]*domain.User
	registered []*domain.User
	err        error
}

func (a *fakeAccounts) VerifyCredentials(_ context.Context, email, password string) (*domain.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	u, ok := a.users[email]
	if !ok || password != "s3cret!" {
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid credentials")
	}
	return u, nil
}

func (a *fakeAccounts) RegisterUser(_ context.Context, user *domain.User, _ string) (*domain.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	created := *user
	created.ID = int64(100 + len(a.registered))
	a.registered = append(a.registered, &created)
	return &created, nil
}

// fakeTokens issues opaque tokens and remembers their payloads.
type fakeTokens struct {
	issued map[string]*domain.TokenPayload
}

func (f *fakeTokens) CreateToken(user *domain.User) (string, *domain.TokenPayload, error) {
	payload := &domain.TokenPayload{
		ID:        uuid.New(),
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  testNow,
		ExpiresAt: testNow.Add(time.Hour),
	}
	token := "token-" + payload.ID.String()
	f.issued[token] = payload
	return token, payload, nil
}

func (f *fakeTokens) VerifyToken(token string) (*domain.TokenPayload, error) {
	payload, ok := f.issued[token]
	if !ok {
		return nil, errors.New("token is malformed")
	}
	return payload, nil
}

func newTestAuthService() (*AuthService, *fakeAccounts) {
	accounts := &fakeAccounts{users: map[string]*domain.User{
		"awa@example.com": {ID: 7, Email: "awa@example.com", Role: domain.RoleClient},
	}}
	svc := NewAuthService(accounts, &fakeTokens{issued: map[string]*domain.TokenPayload{}}, memory.NewRevocationStore(0, nopLogger{}), nopLogger{})
	svc.now = func() time.Time { return testNow }
	return svc, accounts
}

func TestLoginLogoutVerify(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "awa@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	payload, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.UserID)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "token has been revoked", err.Error())
}

func TestLoginFailures(t *testing.T) {
	svc, accounts := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.Login(ctx, "awa@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	accounts.err = errors.New("connection refused")
	_, _, err = svc.Login(ctx, "awa@example.com", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestSignupDefaultsToClient(t *testing.T) {
	svc, accounts := newTestAuthService()

	token, user, err := svc.Signup(context.Background(), &domain.User{FirstName: "Ibou", LastName: "Ndiaye", Email: "ibou@example.com"}, "s3cret!")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleClient, user.Role)
	require.Len(t, accounts.registered, 1)
}

func TestVerifyRejectsUnknownToken(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
