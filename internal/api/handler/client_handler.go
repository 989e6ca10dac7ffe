package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credilinea/intake-system/internal/api/metrics"
	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// ClientHandler handles HTTP requests for client intake operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type listClientsResponse struct {
	Clients []domain.Client `json:"clients"`
	Count   int             `json:"count"`
}

// Create handles POST /clients — the intake form submission.
//
// @Summary      Register a new client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      intakeRequest  true  "Client intake fields"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req intakeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	client, err := h.service.Register(c.Request().Context(), ports.RegisterClientInput{
		Cedula:           req.Cedula,
		Name:             req.Name,
		BirthDate:        req.BirthDate,
		Address:          req.Address,
		City:             req.City,
		Neighborhood:     req.Neighborhood,
		WorkAddress:      req.WorkAddress,
		WorkNeighborhood: req.WorkNeighborhood,
		WorkCity:         req.WorkCity,
		Workplace:        req.Workplace,
		WorkPhone:        req.WorkPhone,
		CreditAmount:     req.CreditAmount,
		ReturnAmount:     req.ReturnAmount,
		CompanyProfit:    req.CompanyProfit,
		AgentProfit:      req.AgentProfit,
		CreatedBy:        email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			metrics.DuplicateRejectionsTotal.Inc()
		}
		return err
	}

	metrics.ClientsRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, client)
}

// List handles GET /clients.
//
// @Summary      List all clients, newest first
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClientsResponse
// @Failure      401  {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listClientsResponse{Clients: clients, Count: len(clients)})
}

// Delete handles DELETE /clients/:id. Admin only.
//
// @Summary      Delete a client record
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client record id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	email, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), role, email); err != nil {
		return err
	}

	metrics.ClientsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
