package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/service"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/testhelpers"
	"github.com/Adarsh8067/Recipe-Sharing-Platform/internal/types"
)

func registerRequest(username, email string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	user, token, err := auth.Register(registerRequest("ada", "ada@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "user", user.UserType)
	assert.False(t, user.IsVerified)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada", claims.Username)

	loggedIn, loginToken, err := auth.Login("ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterChefIsVerified(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	req := registerRequest("chef", "chef@example.com")
	req.UserType = "chef"

	user, _, err := auth.Register(req)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	_, _, err := auth.Register(registerRequest("ada", "ada@example.com"))
	require.NoError(t, err)

	_, _, err = auth.Register(registerRequest("other", "ada@example.com"))
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	_, _, err = auth.Register(registerRequest("ada", "other@example.com"))
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestRegisterPasswordRules(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	req := registerRequest("ada", "ada@example.com")
	req.ConfirmPassword = "different"
	_, _, err := auth.Register(req)
	assert.ErrorIs(t, err, service.ErrPasswordMismatch)

	req = registerRequest("ada", "ada@example.com")
	req.Password = "short"
	req.ConfirmPassword = "short"
	_, _, err = auth.Register(req)
	assert.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	_, _, err := auth.Register(registerRequest("ada", "ada@example.com"))
	require.NoError(t, err)

	_, _, err = auth.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	user, token, err := auth.Register(registerRequest("ada", "ada@example.com"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
