package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bankcore/internal/auth"
	"bankcore/internal/errors"
	"bankcore/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful signup",
			body: `{"username":"alice","password":"pw1","role":"customer"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "alice", "pw1", model.RoleCustomer).
					Return(&model.User{ID: 1, Username: "alice", Role: model.RoleCustomer}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing fields",
			body:           `{"username":"alice"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "role outside enum",
			body:           `{"username":"alice","password":"pw1","role":"admin"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username maps to 400",
			body: `{"username":"alice","password":"pw2","role":"banker"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "alice", "pw2", model.RoleBanker).
					Return(nil, errors.ErrDuplicateUsername)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			e := newTestEcho()
			h := NewAuthHandler(mockSvc, auth.NewTokenRegistry())
			e.POST("/signup", h.Signup)

			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "registered")
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful login returns token",
			body: `{"username":"alice","password":"pw1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "alice", "pw1").
					Return("deadbeef", &model.User{ID: 1, Username: "alice", Role: model.RoleCustomer}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown username is 404",
			body: `{"username":"ghost","password":"pw1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "ghost", "pw1").
					Return("", nil, errors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "wrong password is 401",
			body: `{"username":"alice","password":"wrong"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "alice", "wrong").
					Return("", nil, errors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password is 400",
			body:           `{"username":"alice"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			e := newTestEcho()
			h := NewAuthHandler(mockSvc, auth.NewTokenRegistry())
			e.POST("/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "token")
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Protected(t *testing.T) {
	registry := auth.NewTokenRegistry()
	token, err := registry.Issue(&model.User{ID: 1, Username: "alice", Role: model.RoleCustomer})
	assert.NoError(t, err)

	e := newTestEcho()
	h := NewAuthHandler(new(MockAuthService), registry)
	e.GET("/protected", h.Protected)

	t.Run("valid token resolves identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"alice"`)
		assert.Contains(t, rec.Body.String(), `"role":"customer"`)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
