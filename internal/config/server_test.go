package config

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"cozycash/internal/api/analytics"
	"cozycash/internal/api/auth"
	"cozycash/internal/api/budget_manager"
	"cozycash/internal/api/expense"
	"cozycash/pkg/bcrypt"
	jwtPkg "cozycash/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
	app    *fiber.App
}

func (s *ServerTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(NewFiber(logger, nil)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithDatabase(DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}),
		WithTokenService(jwtPkg.Config{
			Secret:         []byte("test-secret"),
			Algorithm:      "HS256",
			AccessTokenTTL: 30 * time.Minute,
		}),
		WithBcryptUtils(bcrypt.NewWithCost(4)),
		WithMiddleware(RateLimitConfig{RPS: 100, Burst: 100}),
	)
	s.Require().NoError(err)
	server.RegisterHandler()

	s.server = server
	s.app = server.App()
}

func (s *ServerTestSuite) TearDownTest() {
	s.NoError(s.server.Shutdown(time.Second))
}

func (s *ServerTestSuite) do(method, path, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		s.Require().NoError(err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *ServerTestSuite) decode(resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(jsoniter.NewDecoder(resp.Body).Decode(out))
}

func (s *ServerTestSuite) signUp(email string) string {
	resp := s.do(http.MethodPost, "/api/v1/users", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	form := url.Values{"username": {email}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var login auth.LoginUserResponse
	s.decode(resp, &login)
	s.Equal("bearer", login.TokenType)
	s.Require().NotEmpty(login.AccessToken)

	return login.AccessToken
}

func (s *ServerTestSuite) TestHealthCheck() {
	resp := s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
}

func (s *ServerTestSuite) TestRegistrationAndProfile() {
	token := s.signUp("Alice@Example.com")

	resp := s.do(http.MethodPost, "/api/v1/users/", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/users/me", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var me auth.UserResponse
	s.decode(resp, &me)
	s.Equal("alice@example.com", me.Email)

	resp = s.do(http.MethodGet, "/api/v1/users/me", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))

	resp = s.do(http.MethodGet, "/api/v1/users/me", token+"x", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ServerTestSuite) TestExpensesAreOwnerScoped() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")

	resp := s.do(http.MethodPost, "/api/v1/expenses", alice, map[string]interface{}{
		"amount":      12.5,
		"description": "Lunch",
		"category":    "Food",
		"date":        "2024-05-03T12:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created expense.ExpenseResponse
	s.decode(resp, &created)
	s.True(decimal.RequireFromString("12.5").Equal(created.Amount))

	path := "/api/v1/expenses/" + strconv.FormatInt(created.ID, 10)

	resp = s.do(http.MethodGet, path, bob, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodPatch, path, alice, map[string]interface{}{"category": "Dining"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var updated expense.ExpenseResponse
	s.decode(resp, &updated)
	s.Equal("Dining", updated.Category)
	s.Equal("Lunch", updated.Description)

	resp = s.do(http.MethodPost, "/api/v1/expenses", alice, map[string]interface{}{
		"amount":      -1,
		"description": "Refund",
		"category":    "Food",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/expenses", bob, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var bobs []expense.ExpenseResponse
	s.decode(resp, &bobs)
	s.Empty(bobs)

	resp = s.do(http.MethodDelete, path, alice, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, path, alice, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestBudgetConflict() {
	token := s.signUp("alice@example.com")

	resp := s.do(http.MethodPost, "/api/v1/budgets", token, map[string]interface{}{
		"category": "Food",
		"amount":   120,
		"month":    "2024-05-10",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created budget_manager.BudgetResponse
	s.decode(resp, &created)
	s.Equal("2024-05-01", created.Month)

	resp = s.do(http.MethodPost, "/api/v1/budgets", token, map[string]interface{}{
		"category": "Food",
		"amount":   80,
		"month":    "2024-05-25",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/budgets?month=5&year=2024", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var listed []budget_manager.BudgetResponse
	s.decode(resp, &listed)
	s.Len(listed, 1)
}

func (s *ServerTestSuite) TestAnalytics() {
	token := s.signUp("alice@example.com")

	for _, e := range []map[string]interface{}{
		{"amount": 35, "description": "Groceries", "category": "Food", "date": "2024-05-03T09:00:00Z"},
		{"amount": 25, "description": "Dinner", "category": "Food", "date": "2024-05-03T20:00:00Z"},
		{"amount": 40, "description": "Bus pass", "category": "Transport", "date": "2024-05-07T08:00:00Z"},
		{"amount": 500, "description": "Old", "category": "Rent", "date": "2023-05-07T08:00:00Z"},
	} {
		resp := s.do(http.MethodPost, "/api/v1/expenses", token, e)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
	}
	resp := s.do(http.MethodPost, "/api/v1/budgets", token, map[string]interface{}{
		"category": "All", "amount": 120, "month": "2024-05-01",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/analytics/summary?month=5&year=2024", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var summary analytics.DashboardSummaryResponse
	s.decode(resp, &summary)
	s.True(decimal.NewFromInt(100).Equal(summary.TotalSpent), summary.TotalSpent.String())
	s.True(decimal.NewFromInt(120).Equal(summary.TotalBudget))
	s.True(decimal.NewFromInt(20).Equal(summary.RemainingBudget))
	s.Equal("Food", summary.TopCategory)
	s.Equal("Warning", summary.Status)

	resp = s.do(http.MethodGet, "/api/v1/analytics/category-breakdown?month=5&year=2024", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var breakdown analytics.CategoryBreakdownResponse
	s.decode(resp, &breakdown)
	s.Require().Len(breakdown.Data, 2)
	s.Equal("Food", breakdown.Data[0].Category)
	s.Equal(60.0, breakdown.Data[0].Percentage)
	s.Equal(40.0, breakdown.Data[1].Percentage)

	resp = s.do(http.MethodGet, "/api/v1/analytics/spending-trend?month=5&year=2024", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var trend analytics.SpendingTrendResponse
	s.decode(resp, &trend)
	s.Require().Len(trend.Data, 2)
	s.Equal("2024-05-03", trend.Data[0].Date)
	s.True(decimal.NewFromInt(60).Equal(trend.Data[0].Amount))
	s.Equal("2024-05-07", trend.Data[1].Date)

	resp = s.do(http.MethodGet, "/api/v1/analytics/summary", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &summary)
	s.True(decimal.NewFromInt(600).Equal(summary.TotalSpent))
	s.Equal("Rent", summary.TopCategory)
	s.Equal("Danger", summary.Status)

	for _, query := range []string{"month=13", "month=0", "year=1999", "month=abc"} {
		resp = s.do(http.MethodGet, "/api/v1/analytics/summary?"+query, token, nil)
		s.Equal(http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
