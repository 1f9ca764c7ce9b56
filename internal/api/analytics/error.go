package analytics

import (
	"cozycash/pkg/response"
	"net/http"
)

var (
	ErrInvalidMonth = response.NewError(http.StatusBadRequest, "month must be between 1 and 12")
	ErrInvalidYear  = response.NewError(http.StatusBadRequest, "year must be between 2000 and 2100")
)
