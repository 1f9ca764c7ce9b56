package authService

import (
	"context"
	"cozycash/internal/api/auth"
	"cozycash/internal/entity"
	"cozycash/pkg/bcrypt"
	contextPkg "cozycash/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) RegisterUser(ctx context.Context, req auth.CreateUserRequest) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return entity.User{}, auth.ErrPasswordTooLong
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return entity.User{}, auth.ErrRegisterUser
	}

	user := entity.User{
		Email:        entity.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now(),
	}

	created, err := repo.Users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return entity.User{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create user")
		return entity.User{}, auth.ErrRegisterUser
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    created.ID,
	}).Info("User registered")

	return created, nil
}

func (s *userDomainImpl) GetByID(ctx context.Context, id int64) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	user, err := repo.Users.GetByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    id,
			"error":      err.Error(),
		}).Warn("Failed to get user by id")
		return entity.User{}, err
	}

	return user, nil
}

func (s *userDomainImpl) DeleteUser(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Users.DeleteUser(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    id,
			"error":      err.Error(),
		}).Warn("Failed to delete user")
		return err
	}

	return nil
}
