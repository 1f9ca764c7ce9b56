package jwtPkg

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cozycash/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpired      = errors.New("token expired")

	ErrEmptySecret        = errors.New("jwt secret must not be empty")
	ErrUnsupportedMethod  = errors.New("jwt algorithm must be one of HS256, HS384, HS512")
	ErrNonPositiveExpires = errors.New("jwt lifetime must be positive")
)

const UserLocalsKey = "user"

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Secret         []byte
	Algorithm      string
	AccessTokenTTL time.Duration
}

type Claims struct {
	UserID *int64 `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

type ITokenService interface {
	Issue(userID int64) (string, time.Time, error)
	Validate(token string) (int64, error)
	TTL() time.Duration
}

type tokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) (ITokenService, error) {
	return NewWithClock(cfg, time.Now)
}

func NewWithClock(cfg Config, now func() time.Time) (ITokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedMethod, cfg.Algorithm)
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, ErrNonPositiveExpires
	}
	if now == nil {
		now = time.Now
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &tokenService{
		secret: secret,
		method: method,
		ttl:    cfg.AccessTokenTTL,
		now:    now,
	}, nil
}

func (s *tokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID that expires one TTL from now.
func (s *tokenService) Issue(userID int64) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	id := userID
	claims := Claims{
		UserID: &id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Validate checks signature, algorithm and expiry and returns the user id
// claim. It never touches storage.
func (s *tokenService) Validate(token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == nil {
		return 0, ErrInvalidToken
	}

	return *claims.UserID, nil
}

// ExtractBearer returns the credential of an "Authorization: Bearer <token>"
// header value.
func ExtractBearer(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	return token, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals(UserLocalsKey)

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
