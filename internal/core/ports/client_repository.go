package ports

import (
	"context"

	"github.com/credilinea/intake-system/internal/core/domain"
)

// ClientRepository defines the interface for client-record persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByCedula(ctx context.Context, cedula string) (*domain.Client, error)
	// FindAll returns every client ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id string) error
}
