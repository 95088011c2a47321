package mocks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/journalist-portfolio-api/internal/models"
	"github.com/journalist-portfolio-api/internal/service"
)

// MockAuthService is a mock implementation of AuthService. It accepts
// exactly one username/password pair and one token.
type MockAuthService struct {
	Username string
	Password string
	Token    string
	LoginErr error
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Username: "admin",
		Password: "admin123",
		Token:    "test-token",
	}
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	if req.Username != m.Username || req.Password != m.Password {
		return nil, service.ErrInvalidCredentials
	}
	return &models.LoginResponse{
		Success: true,
		User:    models.PublicUser{ID: 1, Username: m.Username, Role: models.DefaultRole},
		Token:   m.Token,
	}, nil
}

func (m *MockAuthService) ParseToken(token string) (*service.Claims, error) {
	if token != m.Token {
		return nil, errors.New("invalid token")
	}
	return &service.Claims{UserID: 1, Username: m.Username, Role: models.DefaultRole}, nil
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	UpsertFunc func(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error)
	Bodies     map[string][]byte
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{
		Bodies: make(map[string][]byte),
	}
}

func (m *MockImportService) Upsert(ctx context.Context, resource, key string, r io.Reader) (*models.ImportResult, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, resource, key, r)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.Bodies[resource] = body
	if key == "" {
		key = models.DefaultImportKey(resource)
	}
	return &models.ImportResult{Resource: resource, Key: key}, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, resource, format string) error
	Counts     map[string]int
	CountErr   error
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: map[string]int{
			"articles":   0,
			"categories": 0,
			"tags":       0,
			"users":      0,
			"contact":    0,
		},
	}
}

func (m *MockExportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, resource, format)
	}
	return nil
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	n, ok := m.Counts[resource]
	if !ok {
		return 0, service.ErrUnknownResource
	}
	return n, nil
}

// MockHealthChecker reports Err from every health check
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
