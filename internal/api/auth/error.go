package auth

import (
	"cozycash/pkg/response"
	"net/http"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "the user with this email already exists in the system")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusUnauthorized, "Incorrect email or password")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrUnauthorized           = response.NewError(http.StatusUnauthorized, "Could not validate credentials")
	ErrPasswordTooLong        = response.NewError(http.StatusBadRequest, "password is too long")
	ErrRegisterUser           = response.NewError(http.StatusInternalServerError, "failed to register user")
	ErrIssueToken             = response.NewError(http.StatusInternalServerError, "failed to issue access token")
)
