package postgres

import (
	"context"
	"errors"

	"github.com/wearly/supportbot/internal/models"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateOrGet(ctx context.Context, userID, username, email string) (*models.ChatUser, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) CreateOrGet(ctx context.Context, userID, username, email string) (*models.ChatUser, error) {
	var row models.ChatUser
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.ChatUser{UserID: userID, Username: username, Email: email}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
