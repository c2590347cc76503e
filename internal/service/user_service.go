package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return nil, ErrEmptyName
	}
	if err := validateEmail(user.Email); err != nil {
		return nil, err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// Update edits name and/or email. Blank fields keep stored values.
func (s *UserService) Update(ctx context.Context, id int64, in models.UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) != "" {
		user.Name = in.Name
	}
	if strings.TrimSpace(in.Email) != "" {
		if err := validateEmail(in.Email); err != nil {
			return nil, err
		}
		user.Email = in.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetUserByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	// Минимальная проверка формата, уникальность обеспечивает БД
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}
	return nil
}
