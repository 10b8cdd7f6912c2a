package repositories

import (
	"errors"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetTokenNotFound = errors.New("password reset token not found")

type PasswordResetRepository interface {
	Replace(db *gorm.DB, token *models.PasswordResetToken) error
	FindByToken(db *gorm.DB, token string) (*models.PasswordResetToken, error)
	Delete(db *gorm.DB, id string) error
}

type PasswordResetRepositoryImpl struct{}

func NewPasswordResetRepository() PasswordResetRepository {
	return &PasswordResetRepositoryImpl{}
}

// Replace invalidates all previous tokens for the email and stores the new
// one, in a single transaction. One live token per email at any time.
func (r *PasswordResetRepositoryImpl) Replace(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", token.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *PasswordResetRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.PasswordResetToken, error) {
	var row models.PasswordResetToken
	err := db.First(&row, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PasswordResetRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.PasswordResetToken{}, "id = ?", id).Error
}
