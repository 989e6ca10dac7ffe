package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

type stubClientService struct {
	registerErr error
	lastInput   ports.RegisterClientInput
	clients     []domain.Client
	listErr     error
	deleteErr   error
	deleted     []string
}

func (s *stubClientService) Register(_ context.Context, input ports.RegisterClientInput) (*domain.Client, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.lastInput = input
	return &domain.Client{ID: "client_1", Cedula: input.Cedula, Name: input.Name, CreatedBy: input.CreatedBy}, nil
}

func (s *stubClientService) List(_ context.Context) ([]domain.Client, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.clients, nil
}

func (s *stubClientService) Delete(_ context.Context, id, _, _ string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

const intakeBody = `{
	"cedula": "123456",
	"name": "Ana Ruiz",
	"birth_date": "1990-04-12",
	"address": "Calle 10 #5-20",
	"city": "Bogota",
	"neighborhood": "Chapinero",
	"work_address": "Av 68 #40-11",
	"work_neighborhood": "Salitre",
	"work_city": "Bogota",
	"workplace": "Acme SAS",
	"work_phone": "6015551234",
	"credit_amount": "1000",
	"return_amount": "1200",
	"company_profit": "150",
	"agent_profit": "50"
}`

func TestClientHandler_Create(t *testing.T) {
	svc := &stubClientService{}
	h := NewClientHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/clients", intakeBody)
	c.Set("email", "agent@x.com")
	c.Set("role", domain.RoleAgent)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastInput.Cedula != "123456" {
		t.Fatalf("cedula not forwarded, got %q", svc.lastInput.Cedula)
	}
	if svc.lastInput.CreditAmount != "1000" {
		t.Fatalf("credit amount not forwarded, got %q", svc.lastInput.CreditAmount)
	}
	if svc.lastInput.CreatedBy != "agent@x.com" {
		t.Fatalf("creator must come from the session, got %q", svc.lastInput.CreatedBy)
	}
}

func TestClientHandler_Create_MissingFields(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	c, _ := newTestContext(http.MethodPost, "/clients", `{"cedula":"123456"}`)
	c.Set("email", "agent@x.com")
	c.Set("role", domain.RoleAgent)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestClientHandler_Create_BadBirthDate(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	body := `{
		"cedula": "123456", "name": "Ana Ruiz", "birth_date": "12/04/1990",
		"address": "a", "city": "b", "neighborhood": "c",
		"work_address": "d", "work_neighborhood": "e", "work_city": "f",
		"workplace": "g", "work_phone": "h",
		"credit_amount": "1000", "return_amount": "1200",
		"company_profit": "150", "agent_profit": "50"
	}`
	c, _ := newTestContext(http.MethodPost, "/clients", body)
	c.Set("email", "agent@x.com")
	c.Set("role", domain.RoleAgent)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestClientHandler_Create_Duplicate(t *testing.T) {
	dup := &domain.DuplicateClientError{Cedula: "123456", CreatedBy: "other@x.com"}
	h := NewClientHandler(&stubClientService{registerErr: dup})

	c, _ := newTestContext(http.MethodPost, "/clients", intakeBody)
	c.Set("email", "agent@x.com")
	c.Set("role", domain.RoleAgent)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
	var dce *domain.DuplicateClientError
	if !errors.As(err, &dce) || dce.CreatedBy != "other@x.com" {
		t.Fatalf("duplicate error must name the original creator, got %v", err)
	}
}

func TestClientHandler_Create_NoIdentity(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	c, _ := newTestContext(http.MethodPost, "/clients", intakeBody)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestClientHandler_List(t *testing.T) {
	svc := &stubClientService{clients: []domain.Client{
		{ID: "client_2", Cedula: "222", Name: "Beto"},
		{ID: "client_1", Cedula: "111", Name: "Ana"},
	}}
	h := NewClientHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/clients", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Clients) != 2 {
		t.Fatalf("expected 2 clients, got count=%d len=%d", resp.Count, len(resp.Clients))
	}
	if resp.Clients[0].ID != "client_2" {
		t.Fatalf("expected service order preserved, got %q first", resp.Clients[0].ID)
	}
}

func TestClientHandler_Delete(t *testing.T) {
	svc := &stubClientService{}
	h := NewClientHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/clients/client_1", "")
	c.SetParamNames("id")
	c.SetParamValues("client_1")
	c.Set("email", "boss@credilinea.com")
	c.Set("role", domain.RoleAdmin)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "client_1" {
		t.Fatalf("expected client_1 deleted, got %v", svc.deleted)
	}
}

func TestClientHandler_Delete_NotFound(t *testing.T) {
	h := NewClientHandler(&stubClientService{deleteErr: domain.ErrClientNotFound})

	c, _ := newTestContext(http.MethodDelete, "/clients/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	c.Set("email", "boss@credilinea.com")
	c.Set("role", domain.RoleAdmin)

	err := h.Delete(c)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
