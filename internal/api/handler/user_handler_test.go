package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/credilinea/intake-system/internal/core/domain"
)

type stubUserService struct {
	users      []domain.User
	setRoleErr error
	lastID     string
	lastRole   string
	lastActor  string
}

func (s *stubUserService) List(_ context.Context) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubUserService) SetRole(_ context.Context, id, role, actorEmail string) (*domain.User, error) {
	if s.setRoleErr != nil {
		return nil, s.setRoleErr
	}
	s.lastID, s.lastRole, s.lastActor = id, role, actorEmail
	return &domain.User{ID: id, Email: "new@x.com", Role: role}, nil
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{users: []domain.User{
		{ID: "user_1", Email: "boss@credilinea.com", Role: domain.RoleAdmin},
		{ID: "user_2", Email: "new@x.com", Role: domain.RolePending},
	}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected pending accounts included, got count=%d", resp.Count)
	}
}

func TestUserHandler_SetRole(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/users/user_2/role", `{"role":"agent"}`)
	c.SetParamNames("id")
	c.SetParamValues("user_2")
	c.Set("email", "boss@credilinea.com")
	c.Set("role", domain.RoleAdmin)

	if err := h.SetRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastID != "user_2" || svc.lastRole != domain.RoleAgent {
		t.Fatalf("role change not forwarded: id=%q role=%q", svc.lastID, svc.lastRole)
	}
	if svc.lastActor != "boss@credilinea.com" {
		t.Fatalf("actor must come from the session, got %q", svc.lastActor)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != domain.RoleAgent {
		t.Fatalf("expected updated user in response, got role %q", user.Role)
	}
}

func TestUserHandler_SetRole_InvalidRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPut, "/users/user_2/role", `{"role":"superuser"}`)
	c.SetParamNames("id")
	c.SetParamValues("user_2")
	c.Set("email", "boss@credilinea.com")
	c.Set("role", domain.RoleAdmin)

	err := h.SetRole(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_SetRole_LockedAccount(t *testing.T) {
	h := NewUserHandler(&stubUserService{setRoleErr: domain.ErrRoleLocked})

	c, _ := newTestContext(http.MethodPut, "/users/user_1/role", `{"role":"agent"}`)
	c.SetParamNames("id")
	c.SetParamValues("user_1")
	c.Set("email", "boss@credilinea.com")
	c.Set("role", domain.RoleAdmin)

	err := h.SetRole(c)
	if !errors.Is(err, domain.ErrRoleLocked) {
		t.Fatalf("expected ErrRoleLocked, got %v", err)
	}
}
