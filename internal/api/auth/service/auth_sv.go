package authService

import (
	"context"
	"cozycash/internal/api/auth"
	"cozycash/internal/entity"
	contextPkg "cozycash/pkg/context"
	"errors"

	"github.com/sirupsen/logrus"
)

const tokenType = "bearer"

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByEmail(c, entity.NormalizeEmail(req.Username))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Login attempt for unknown email")
			return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user by email")
		return auth.LoginUserResponse{}, err
	}

	if !s.bcryptUtils.VerifyPassword(req.Password, user.PasswordHash) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginUserResponse{}, auth.ErrIssueToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("Token created")

	return auth.LoginUserResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *authDomainImpl) Resolve(c context.Context, token string) (entity.UserLoginData, error) {
	requestID := contextPkg.GetRequestID(c)

	userID, err := s.tokens.Validate(token)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected bearer token")
		return entity.UserLoginData{}, auth.ErrUnauthorized
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.UserLoginData{}, err
	}

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    userID,
			}).Warn("Token subject no longer exists")
			return entity.UserLoginData{}, auth.ErrUnauthorized
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load token subject")
		return entity.UserLoginData{}, err
	}

	return entity.UserLoginData{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}
