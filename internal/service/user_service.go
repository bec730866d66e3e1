package service

import (
	"context"

	"github.com/jobora/chat-service/internal/domain"
)

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type UserService struct {
	users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{users: users}
}

// GetProfile возвращает публичный профиль собеседника;
// domain.ErrUserNotFound, если такого пользователя нет.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
