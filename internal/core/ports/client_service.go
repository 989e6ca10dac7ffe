package ports

import (
	"context"

	"github.com/credilinea/intake-system/internal/core/domain"
)

// RegisterClientInput carries the intake form fields. Monetary amounts
// arrive as strings and are parsed and validated by the service.
type RegisterClientInput struct {
	Cedula           string
	Name             string
	BirthDate        string
	Address          string
	City             string
	Neighborhood     string
	WorkAddress      string
	WorkNeighborhood string
	WorkCity         string
	Workplace        string
	WorkPhone        string
	CreditAmount     string
	ReturnAmount     string
	CompanyProfit    string
	AgentProfit      string
	CreatedBy        string
}

type ClientService interface {
	Register(ctx context.Context, input RegisterClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	// Delete removes a client record. Only admins may delete; the role is
	// re-checked here even though routing already enforces it.
	Delete(ctx context.Context, id, actorRole, actorEmail string) error
}
