package user

import (
	"context"

	"gorm.io/gorm"

	"socialwall/internal/dbmysql"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error)
	GetUserByName(ctx context.Context, name string) (*dbmysql.User, error)
	CheckUserExists(ctx context.Context, name string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByName(ctx context.Context, name string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CheckUserExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
