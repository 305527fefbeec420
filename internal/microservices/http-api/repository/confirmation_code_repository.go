package repository

import (
	"context"
	"fmt"
	"time"

	"yamdb/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfirmationCodeRepository stores the single live code of each user.
type ConfirmationCodeRepository interface {
	Replace(ctx context.Context, userID, code string) error
	FindByUserID(ctx context.Context, userID string) (*models.ConfirmationCode, error)
	Consume(ctx context.Context, userID, code string) (bool, error)
}

// confirmationCodeRepository is the GORM implementation of ConfirmationCodeRepository
type confirmationCodeRepository struct {
	db *gorm.DB
}

func NewConfirmationCodeRepository(db *gorm.DB) ConfirmationCodeRepository {
	return &confirmationCodeRepository{db: db}
}

// Replace upserts on the unique user_id so a previous code stops matching.
func (r *confirmationCodeRepository) Replace(ctx context.Context, userID, code string) error {
	cc := &models.ConfirmationCode{
		UserID:    userID,
		Code:      code,
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "created_at"}),
		}).
		Create(cc).Error
	if err != nil {
		return fmt.Errorf("replace confirmation code: %w", err)
	}
	return nil
}

func (r *confirmationCodeRepository) FindByUserID(ctx context.Context, userID string) (*models.ConfirmationCode, error) {
	var cc models.ConfirmationCode
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cc).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

// Consume deletes the code only if it still matches; false means another
// request used or replaced it first.
func (r *confirmationCodeRepository) Consume(ctx context.Context, userID, code string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Delete(&models.ConfirmationCode{})
	if result.Error != nil {
		return false, fmt.Errorf("consume confirmation code: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
