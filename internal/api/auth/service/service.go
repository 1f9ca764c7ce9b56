package authService

import (
	"context"
	"cozycash/internal/api/auth"
	authRepository "cozycash/internal/api/auth/repository"
	"cozycash/internal/entity"
	"cozycash/pkg/bcrypt"
	jwtPkg "cozycash/pkg/jwt"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (entity.User, error)
	GetByID(c context.Context, id int64) (entity.User, error)
	DeleteUser(c context.Context, id int64) error
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	// Resolve maps a bearer token to the user it was issued for. Every
	// failure to do so is reported as auth.ErrUnauthorized.
	Resolve(c context.Context, token string) (entity.UserLoginData, error)
}

type authService struct {
	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	tokens      jwtPkg.ITokenService
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	tokens jwtPkg.ITokenService,
	bcryptUtils bcrypt.IBcrypt,
) AuthService {
	return &authService{
		userDomain: &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, tokens: tokens, bcryptUtils: bcryptUtils},
	}
}
