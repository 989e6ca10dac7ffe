package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrClientExists = errors.New("client already exists")
var ErrInvalidAmount = errors.New("invalid monetary amount")

// DuplicateClientError reports a cédula collision, naming the user who
// registered the existing record so agents can coordinate.
type DuplicateClientError struct {
	Cedula    string
	CreatedBy string
}

func (e *DuplicateClientError) Error() string {
	if e.CreatedBy == "" {
		return fmt.Sprintf("client with cedula %s already exists", e.Cedula)
	}
	return fmt.Sprintf("client with cedula %s already exists, registered by %s", e.Cedula, e.CreatedBy)
}

func (e *DuplicateClientError) Unwrap() error { return ErrClientExists }

// Client is the intake aggregate. The cédula (national ID) is the business
// key; a unique index on it backs the application-level duplicate check.
type Client struct {
	ID               string    `json:"id"`
	Cedula           string    `json:"cedula"`
	Name             string    `json:"name"`
	BirthDate        string    `json:"birth_date"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	Neighborhood     string    `json:"neighborhood"`
	WorkAddress      string    `json:"work_address"`
	WorkNeighborhood string    `json:"work_neighborhood"`
	WorkCity         string    `json:"work_city"`
	Workplace        string    `json:"workplace"`
	WorkPhone        string    `json:"work_phone"`
	CreditAmount     float64   `json:"credit_amount"`
	ReturnAmount     float64   `json:"return_amount"`
	CompanyProfit    float64   `json:"company_profit"`
	AgentProfit      float64   `json:"agent_profit"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedBy        string    `json:"created_by"`
}
