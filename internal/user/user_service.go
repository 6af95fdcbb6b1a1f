package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"socialwall/internal/common"
	"socialwall/internal/dbmysql"
)

type UserService interface {
	RegisterUser(ctx context.Context, name, password, team string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, name, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID string) (*dbmysql.User, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, name, password, team string) (*dbmysql.User, string, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.userRepo.CheckUserExists(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", errors.New("a user with this name already exists")
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &dbmysql.User{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: hash,
		Role:         "user",
		Team:         team,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, name, password string) (*dbmysql.User, string, error) {
	user, err := s.userRepo.GetUserByName(ctx, name)
	if err != nil {
		return nil, "", errors.New("invalid name or password")
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", errors.New("invalid name or password")
	}

	token, err := common.GenerateToken(user.ID, user.Name)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dbmysql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
