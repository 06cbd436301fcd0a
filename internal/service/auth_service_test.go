package service

import (
	"context"
	"testing"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_CreatesUserAndToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	svc := NewAuthService(users)

	resp, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "  Alice@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Empty(t, resp.User.PasswordHash)

	// The token subject carries the user id.
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID.String(), claims.Subject)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "supersecret"}

	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.EqualError(t, err, "email already registered")
}

func TestLogin_VerifiesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.add(&model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	})

	resp, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.EqualError(t, err, "invalid credentials")

	// Unknown accounts fail the same way as wrong passwords.
	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.EqualError(t, err, "invalid credentials")
}
