package repositories

import (
	"errors"
	"strings"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	GetOrCreateByLabel(db *gorm.DB, label string) (*models.CategoryTag, error)
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

// GetOrCreateByLabel upserts a tag by case-insensitive label. Labels are
// stored trimmed with their original casing; lookups ignore case so "BBQ"
// and "bbq" resolve to one tag.
func (r *TagRepositoryImpl) GetOrCreateByLabel(db *gorm.DB, label string) (*models.CategoryTag, error) {
	label = strings.TrimSpace(label)

	var tag models.CategoryTag
	err := db.Where("LOWER(label) = LOWER(?)", label).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.CategoryTag{Label: label}
	if err := db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent create; the winner's row is the tag.
			if ferr := db.Where("LOWER(label) = LOWER(?)", label).First(&tag).Error; ferr == nil {
				return &tag, nil
			}
		}
		return nil, err
	}
	return &tag, nil
}
