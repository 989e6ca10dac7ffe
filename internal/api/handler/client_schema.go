package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// intakeRequest carries the client intake form. Monetary fields are strings
// on the wire; the service parses and rejects anything non-numeric.
type intakeRequest struct {
	Cedula           string `json:"cedula"            validate:"required"`
	Name             string `json:"name"              validate:"required"`
	BirthDate        string `json:"birth_date"        validate:"required,datetime=2006-01-02"`
	Address          string `json:"address"           validate:"required"`
	City             string `json:"city"              validate:"required"`
	Neighborhood     string `json:"neighborhood"      validate:"required"`
	WorkAddress      string `json:"work_address"      validate:"required"`
	WorkNeighborhood string `json:"work_neighborhood" validate:"required"`
	WorkCity         string `json:"work_city"         validate:"required"`
	Workplace        string `json:"workplace"         validate:"required"`
	WorkPhone        string `json:"work_phone"        validate:"required"`
	CreditAmount     string `json:"credit_amount"     validate:"required"`
	ReturnAmount     string `json:"return_amount"     validate:"required"`
	CompanyProfit    string `json:"company_profit"    validate:"required"`
	AgentProfit      string `json:"agent_profit"      validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=pending agent admin"`
}
