package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// ClientService implements client intake, listing, and deletion.
type ClientService struct {
	repo   ports.ClientRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, audit: audit, logger: logger}
}

// Register validates the intake fields and inserts a new client record.
// The cédula is checked for an existing record first so the error can name
// the original creator; the unique index on the collection closes the race
// between check and insert.
func (s *ClientService) Register(ctx context.Context, input ports.RegisterClientInput) (*domain.Client, error) {
	creditAmount, err := parseAmount("credit_amount", input.CreditAmount)
	if err != nil {
		return nil, err
	}
	returnAmount, err := parseAmount("return_amount", input.ReturnAmount)
	if err != nil {
		return nil, err
	}
	companyProfit, err := parseAmount("company_profit", input.CompanyProfit)
	if err != nil {
		return nil, err
	}
	agentProfit, err := parseAmount("agent_profit", input.AgentProfit)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByCedula(ctx, input.Cedula)
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, fmt.Errorf("check cedula: %w", err)
	}
	if existing != nil {
		return nil, &domain.DuplicateClientError{Cedula: input.Cedula, CreatedBy: existing.CreatedBy}
	}

	client := &domain.Client{
		Cedula:           input.Cedula,
		Name:             input.Name,
		BirthDate:        input.BirthDate,
		Address:          input.Address,
		City:             input.City,
		Neighborhood:     input.Neighborhood,
		WorkAddress:      input.WorkAddress,
		WorkNeighborhood: input.WorkNeighborhood,
		WorkCity:         input.WorkCity,
		Workplace:        input.Workplace,
		WorkPhone:        input.WorkPhone,
		CreditAmount:     creditAmount,
		ReturnAmount:     returnAmount,
		CompanyProfit:    companyProfit,
		AgentProfit:      agentProfit,
		CreatedAt:        time.Now().UTC(),
		CreatedBy:        input.CreatedBy,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			// Lost the race between check and insert; re-fetch to name the winner.
			winner, findErr := s.repo.FindByCedula(ctx, input.Cedula)
			if findErr == nil && winner != nil {
				return nil, &domain.DuplicateClientError{Cedula: input.Cedula, CreatedBy: winner.CreatedBy}
			}
			return nil, &domain.DuplicateClientError{Cedula: input.Cedula}
		}
		s.logger.Error().Err(err).Str("cedula", input.Cedula).Msg("failed to register client")
		return nil, err
	}

	s.logger.Info().Str("cedula", created.Cedula).Str("created_by", created.CreatedBy).Msg("client registered")
	s.audit.Record(ports.AuditInput{
		Action:    domain.ActionClientRegistered,
		Actor:     created.CreatedBy,
		Subject:   created.Cedula,
		Timestamp: created.CreatedAt,
	})

	return created, nil
}

// List returns all clients, newest first. A failure leaves whatever the
// caller was showing untouched; nothing is retried.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load clients")
		return nil, err
	}
	return clients, nil
}

// Delete removes a client record. The admin role is re-checked here even
// though routing already gates the endpoint.
func (s *ClientService) Delete(ctx context.Context, id, actorRole, actorEmail string) error {
	if actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("client_id", id).Str("actor", actorEmail).Msg("client deleted")
	s.audit.Record(ports.AuditInput{
		Action:    domain.ActionClientDeleted,
		Actor:     actorEmail,
		Subject:   id,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// parseAmount converts a monetary form field to a float. Malformed,
// negative, and non-finite values are rejected rather than stored.
func parseAmount(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrInvalidAmount, field, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrInvalidAmount, field, raw)
	}
	return v, nil
}
