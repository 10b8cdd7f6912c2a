package services

import (
	"testing"
	"time"

	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/internal/testutil"
	"gatherly_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthFixture(t *testing.T) (*gorm.DB, AuthService, *testutil.RecordingMailProvider) {
	db := testutil.NewTestDB(t)
	testutil.ConfigureAuth()
	mail := &testutil.RecordingMailProvider{}

	svc := NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewProviderRepository(),
		repositories.NewPasswordResetRepository(),
		mail,
		"https://app.test",
	)
	return db, svc, mail
}

func TestRegister_NormalizesEmail(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	user, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Name:     "Alice",
		Password: "password123",
		Role:     models.UserRoleGuest,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	req := &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleGuest}
	_, err := svc.Register(db, req)
	require.NoError(t, err)

	_, err = svc.Register(db, req)
	require.Error(t, err)
	assert.Same(t, apperrors.ErrEmailAlreadyExists, err)
}

func TestRegister_ShortPassword(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "short",
		Role:     models.UserRoleGuest,
	})
	require.Error(t, err)
	assert.Same(t, apperrors.ErrWeakPassword, err)
}

func TestRegister_ProviderGetsProfile(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	user, err := svc.Register(db, &dto.RegisterRequest{
		Email:        "caterer@example.com",
		Name:         "Cathy",
		Password:     "password123",
		Role:         models.UserRoleProvider,
		BusinessName: "Fine Catering",
		Phone:        "+1 555 0100",
	})
	require.NoError(t, err)

	var provider models.Provider
	require.NoError(t, db.First(&provider, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Fine Catering", provider.BusinessName)
	assert.Equal(t, "caterer@example.com", provider.ContactEmail)
}

func TestRegister_ProviderNeedsBusinessName(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{
		Email:    "caterer@example.com",
		Name:     "Cathy",
		Password: "password123",
		Role:     models.UserRoleProvider,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestLogin(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleHost})
	require.NoError(t, err)

	resp, err := svc.Login(db, &dto.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.UserRoleHost, resp.User.Role)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.Same(t, apperrors.ErrInvalidCredentials, err)

	// Unknown accounts answer with the same error as a bad password.
	_, err = svc.Login(db, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.Same(t, apperrors.ErrInvalidCredentials, err)
}

func TestPasswordResetFlow(t *testing.T) {
	db, svc, mail := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleGuest})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(db, "alice@example.com"))
	require.Len(t, mail.Messages, 1)
	assert.Contains(t, mail.Messages[0].Body, "https://app.test/reset-password?token=")

	var row models.PasswordResetToken
	require.NoError(t, db.First(&row, "email = ?", "alice@example.com").Error)

	require.NoError(t, svc.VerifyResetToken(db, row.Token))
	require.NoError(t, svc.ResetPassword(db, row.Token, "new-password-456"))

	_, err = svc.Login(db, &dto.LoginRequest{Email: "alice@example.com", Password: "new-password-456"})
	require.NoError(t, err)

	// Consumed tokens are unknown afterwards.
	err = svc.VerifyResetToken(db, row.Token)
	assert.Same(t, apperrors.ErrInvalidToken, err)
	err = svc.ResetPassword(db, row.Token, "another-password")
	assert.Same(t, apperrors.ErrInvalidToken, err)
}

func TestPasswordReset_UnknownEmail(t *testing.T) {
	db, svc, mail := newAuthFixture(t)

	err := svc.RequestPasswordReset(db, "nobody@example.com")
	require.Error(t, err)
	assert.Empty(t, mail.Messages)
}

func TestPasswordReset_SecondRequestInvalidatesFirst(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleGuest})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(db, "alice@example.com"))
	var first models.PasswordResetToken
	require.NoError(t, db.First(&first, "email = ?", "alice@example.com").Error)

	require.NoError(t, svc.RequestPasswordReset(db, "alice@example.com"))

	err = svc.VerifyResetToken(db, first.Token)
	assert.Same(t, apperrors.ErrInvalidToken, err)

	var count int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPasswordReset_ExpiredToken(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	_, err := svc.Register(db, &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleGuest})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(db, "alice@example.com"))

	var row models.PasswordResetToken
	require.NoError(t, db.First(&row, "email = ?", "alice@example.com").Error)
	require.NoError(t, db.Model(&row).Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = svc.VerifyResetToken(db, row.Token)
	assert.Same(t, apperrors.ErrTokenExpired, err)

	// The expired row was deleted on sight, so a second check reports
	// unknown rather than expired.
	err = svc.VerifyResetToken(db, row.Token)
	assert.Same(t, apperrors.ErrInvalidToken, err)
}

func TestCurrentUser(t *testing.T) {
	db, svc, _ := newAuthFixture(t)

	user, err := svc.Register(db, &dto.RegisterRequest{Email: "alice@example.com", Name: "Alice", Password: "password123", Role: models.UserRoleGuest})
	require.NoError(t, err)

	me, err := svc.CurrentUser(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = svc.CurrentUser(db, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
}
