package service

import (
	"context"
	"errors"

	"communityhub/internal/model"
	"communityhub/internal/pkg"
	"communityhub/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  repository.UserRepository
	maker  *pkg.TokenMaker
	mail   *pkg.SMTPConfig // nil disables the welcome mail
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, maker *pkg.TokenMaker, mail *pkg.SMTPConfig, logger *zap.Logger) *UserService {
	return &UserService{users: users, maker: maker, mail: mail, logger: logger}
}

// Signup creates the user and returns it along with a signed access token.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:       pkg.NewID(),
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.maker.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.mail != nil {
		go func(cfg pkg.SMTPConfig, to, name string) {
			if err := pkg.SendEmail(cfg, to, "Welcome", pkg.WelcomeHTML(name)); err != nil {
				s.logger.Warn("welcome mail failed", zap.String("email", to), zap.Error(err))
			}
		}(*s.mail, user.Email, user.Name)
	}

	return user, token, nil
}

func (s *UserService) Signin(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.maker.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResourceNotFound
	}
	return user, err
}
