package authService

import (
	"context"
	"cozycash/database/databasetest"
	"cozycash/internal/api/auth"
	authRepository "cozycash/internal/api/auth/repository"
	"cozycash/pkg/bcrypt"
	jwtPkg "cozycash/pkg/jwt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	now     time.Time
	service AuthService
	ctx     context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.now = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	s.ctx = context.Background()

	tokens, err := jwtPkg.NewWithClock(jwtPkg.Config{
		Secret:         []byte("service-test-secret"),
		Algorithm:      "HS256",
		AccessTokenTTL: 30 * time.Minute,
	}, func() time.Time { return s.now })
	s.Require().NoError(err)

	db := databasetest.NewSQLite(s.T())
	log := databasetest.Logger()
	s.service = New(log, authRepository.New(db, log), tokens, bcrypt.NewWithCost(4))
}

func (s *AuthServiceTestSuite) register(email, password string) int64 {
	user, err := s.service.User().RegisterUser(s.ctx, auth.CreateUserRequest{Email: email, Password: password})
	s.Require().NoError(err)
	return user.ID
}

func (s *AuthServiceTestSuite) TestRegisterNormalizesEmailAndHashesPassword() {
	user, err := s.service.User().RegisterUser(s.ctx, auth.CreateUserRequest{
		Email:    "  Ana@Example.COM ",
		Password: "correct-horse",
	})
	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)
	s.NotEqual("correct-horse", user.PasswordHash)

	_, err = s.service.User().RegisterUser(s.ctx, auth.CreateUserRequest{
		Email:    "ana@example.com",
		Password: "another-password",
	})
	s.ErrorIs(err, auth.ErrEmailAlreadyExists)
}

func (s *AuthServiceTestSuite) TestLoginAndResolve() {
	id := s.register("bob@example.com", "s3cret-pass")

	res, err := s.service.Auth().Login(s.ctx, auth.LoginUserRequest{Username: "BOB@example.com", Password: "s3cret-pass"})
	s.Require().NoError(err)
	s.Equal("bearer", res.TokenType)
	s.Equal(int64(1800), res.ExpiresIn)
	s.NotEmpty(res.AccessToken)

	user, err := s.service.Auth().Resolve(s.ctx, res.AccessToken)
	s.Require().NoError(err)
	s.Equal(id, user.ID)
	s.Equal("bob@example.com", user.Email)
}

func (s *AuthServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	s.register("carol@example.com", "right-password")

	_, wrongPassword := s.service.Auth().Login(s.ctx, auth.LoginUserRequest{Username: "carol@example.com", Password: "wrong-password"})
	_, unknownEmail := s.service.Auth().Login(s.ctx, auth.LoginUserRequest{Username: "nobody@example.com", Password: "right-password"})

	s.ErrorIs(wrongPassword, auth.ErrInvalidEmailOrPassword)
	s.ErrorIs(unknownEmail, auth.ErrInvalidEmailOrPassword)
	s.Equal(wrongPassword.Error(), unknownEmail.Error())
}

func (s *AuthServiceTestSuite) TestResolveCollapsesEveryFailure() {
	id := s.register("dave@example.com", "password-1")
	res, err := s.service.Auth().Login(s.ctx, auth.LoginUserRequest{Username: "dave@example.com", Password: "password-1"})
	s.Require().NoError(err)

	_, malformed := s.service.Auth().Resolve(s.ctx, "not-a-token")
	_, empty := s.service.Auth().Resolve(s.ctx, "")

	s.now = s.now.Add(31 * time.Minute)
	_, expired := s.service.Auth().Resolve(s.ctx, res.AccessToken)

	s.now = s.now.Add(-31 * time.Minute)
	s.Require().NoError(s.service.User().DeleteUser(s.ctx, id))
	_, deleted := s.service.Auth().Resolve(s.ctx, res.AccessToken)

	for _, err := range []error{malformed, empty, expired, deleted} {
		s.ErrorIs(err, auth.ErrUnauthorized)
		s.Equal(auth.ErrUnauthorized.Error(), err.Error())
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
