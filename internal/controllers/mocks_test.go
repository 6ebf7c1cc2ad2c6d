package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"contactly-be/internal/entities"
	"contactly-be/internal/middleware"
	"contactly-be/internal/models"
	"contactly-be/internal/service"
)

const (
	testUserID    = "6f1c2b8e-3a4d-4e5f-8a9b-0c1d2e3f4a5b"
	testContactID = "0b7e4a52-1f3c-4d6e-9a8b-7c6d5e4f3a2b"
)

// =============================================================================
// Mock services
// =============================================================================

type mockAuthService struct {
	registerFunc       func(ctx context.Context, req *models.RegisterRequest) (*entities.User, error)
	loginFunc          func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	profileFunc        func(ctx context.Context, userID string) (*entities.User, error)
	changePasswordFunc func(ctx context.Context, userID string, req *models.ChangePasswordRequest) error
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*entities.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Profile(ctx context.Context, userID string) (*entities.User, error) {
	if m.profileFunc != nil {
		return m.profileFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, userID, req)
	}
	return errors.New("not implemented")
}

type mockContactService struct {
	createFunc         func(ctx context.Context, ownerID string, req *models.CreateContactRequest) (*entities.Contact, error)
	listFunc           func(ctx context.Context, ownerID string, opts service.ListOptions) (*models.ContactListResponse, error)
	getFunc            func(ctx context.Context, ownerID, id string) (*entities.Contact, error)
	updateFunc         func(ctx context.Context, ownerID string, req *models.UpdateContactRequest) (*entities.Contact, error)
	deleteFunc         func(ctx context.Context, ownerID, id string) error
	toggleFavoriteFunc func(ctx context.Context, ownerID, id string) ([]*entities.Contact, error)
}

func (m *mockContactService) Create(ctx context.Context, ownerID string, req *models.CreateContactRequest) (*entities.Contact, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, ownerID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContactService) List(ctx context.Context, ownerID string, opts service.ListOptions) (*models.ContactListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, opts)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContactService) Get(ctx context.Context, ownerID, id string) (*entities.Contact, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContactService) Update(ctx context.Context, ownerID string, req *models.UpdateContactRequest) (*entities.Contact, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, ownerID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContactService) Delete(ctx context.Context, ownerID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return errors.New("not implemented")
}

func (m *mockContactService) ToggleFavorite(ctx context.Context, ownerID, id string) ([]*entities.Contact, error) {
	if m.toggleFavoriteFunc != nil {
		return m.toggleFavoriteFunc(ctx, ownerID, id)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Helpers
// =============================================================================

// withUser stands in for the auth middleware.
func withUser(c *gin.Context) {
	c.Set(middleware.UserKey, &entities.User{ID: testUserID, Name: "Jane", Email: "jane@example.com"})
	c.Set(middleware.UserIDKey, testUserID)
	c.Next()
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
