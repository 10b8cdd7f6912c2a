package services

import (
	"fmt"
	"strings"
	"time"

	"gatherly_backend/internal/auth"
	"gatherly_backend/internal/email"
	"gatherly_backend/internal/logger"
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// resetTokenTTL is the password-reset token lifetime.
const resetTokenTTL = time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	VerifyResetToken(db *gorm.DB, token string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	providerRepo repositories.ProviderRepository
	resetRepo    repositories.PasswordResetRepository
	mailProvider email.Provider
	baseURL      string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	providerRepo repositories.ProviderRepository,
	resetRepo repositories.PasswordResetRepository,
	mailProvider email.Provider,
	baseURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		resetRepo:    resetRepo,
		mailProvider: mailProvider,
		baseURL:      baseURL,
	}
}

// Register creates the user and, for provider-role registrations, the
// provider profile in the same transaction. Role is fixed here; there is
// no role-change path afterwards.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role == models.UserRoleProvider && strings.TrimSpace(req.BusinessName) == "" {
		return nil, apperrors.ValidationError(map[string]string{
			"business_name": "Required when registering as a provider",
		})
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}

		if req.Role == models.UserRoleProvider {
			provider := &models.Provider{
				UserID:       user.ID,
				BusinessName: strings.TrimSpace(req.BusinessName),
				Address:      req.Address,
				Phone:        req.Phone,
				ContactEmail: req.ContactEmail,
			}
			if provider.ContactEmail == "" {
				provider.ContactEmail = user.Email
			}
			return s.providerRepo.Create(tx, provider)
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return user, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

// RequestPasswordReset issues a fresh one-time token, invalidating any
// previous token for the email, and mails the reset link. Callers hide
// failures from the client to prevent account enumeration.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	token := &models.PasswordResetToken{
		Email:     emailAddr,
		Token:     auth.GenerateOpaqueToken(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Replace(db, token); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.baseURL, "/"), token.Token)
	html, err := email.RenderPasswordReset(email.ResetData{Name: user.Name, ResetURL: resetURL})
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.mailProvider.Send(&email.Message{
		To:       user.Email,
		Subject:  "Password reset",
		Body:     "A password reset was requested for your account: " + resetURL,
		HTMLBody: html,
	})
	logger.MailLog(user.Email, "password_reset", err)
	return err
}

// VerifyResetToken checks a token without consuming it. Expired tokens are
// deleted on sight, so a second check reports "unknown" rather than
// "expired".
func (s *AuthServiceImpl) VerifyResetToken(db *gorm.DB, token string) error {
	row, err := s.resetRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if row.Expired(time.Now()) {
		_ = s.resetRepo.Delete(db, row.ID)
		return apperrors.ErrTokenExpired
	}
	return nil
}

// ResetPassword consumes the token exactly once: the password update and
// the token deletion commit together.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	row, err := s.resetRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if row.Expired(time.Now()) {
		_ = s.resetRepo.Delete(db, row.ID)
		return apperrors.ErrTokenExpired
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePasswordByEmail(tx, row.Email, hashedPassword); err != nil {
			return err
		}
		return s.resetRepo.Delete(tx, row.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
