package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-intel-service/internal/api/dto"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/service"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// AccountsHandler manages account records, call activity, custom fields,
// regions and bulk imports.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// GetAccount GET /accounts/:id.
func (h *AccountsHandler) GetAccount(c *fiber.Ctx) error {
	account, values, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	fieldValues := make([]dto.FieldValueResponse, 0, len(values))
	for _, value := range values {
		fieldValues = append(fieldValues, dto.FieldValueResponse{FieldID: value.FieldID, Value: value.Value})
	}
	return c.JSON(fiber.Map{"data": dto.AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		Specialty:    account.Specialty,
		City:         account.City,
		State:        account.State,
		CustomFields: fieldValues,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}})
}

// LogCall POST /accounts/:id/calls.
func (h *AccountsHandler) LogCall(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Person == nil {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.LogCallRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	log := &domain.CallLog{
		SurgeonID: c.Params("id"),
		LoggedBy:  principal.Person.ID,
		Notes:     req.Notes,
	}
	if req.CalledAt != nil {
		log.CalledAt = *req.CalledAt
	}
	if err := h.service.LogCall(c.Context(), log); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": callLogResponse(log)})
}

// ListCalls GET /accounts/:id/calls.
func (h *AccountsHandler) ListCalls(c *fiber.Ctx) error {
	logs, err := h.service.ListCalls(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	items := make([]dto.CallLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, callLogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Import POST /imports/accounts. Rows arrive pre-parsed; the upload and
// spreadsheet parsing happen upstream of this service.
func (h *AccountsHandler) Import(c *fiber.Ctx) error {
	var req dto.ImportAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	accounts := make([]domain.Surgeon, 0, len(req.Accounts))
	for _, row := range req.Accounts {
		accounts = append(accounts, domain.Surgeon{
			ID:        row.ID,
			Name:      row.Name,
			Specialty: row.Specialty,
			City:      row.City,
			State:     row.State,
		})
	}
	procedures := make([]domain.ProcedureVolume, 0, len(req.Procedures))
	for _, row := range req.Procedures {
		procedures = append(procedures, domain.ProcedureVolume{
			SurgeonID:    row.SurgeonID,
			CPTCode:      row.CPTCode,
			AnnualVolume: row.AnnualVolume,
		})
	}

	result, err := h.service.Import(c.Context(), accounts, procedures)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ImportResponse{
		Accounts:   dto.BulkResultResponse{Applied: result.Accounts.Applied, Total: result.Accounts.Total},
		Procedures: dto.BulkResultResponse{Applied: result.Procedures.Applied, Total: result.Procedures.Total},
	}})
}

// CreateField POST /custom-fields.
func (h *AccountsHandler) CreateField(c *fiber.Ctx) error {
	var req dto.CreateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	field := &domain.CustomField{
		Name:     req.Name,
		Type:     req.Type,
		Options:  req.Options,
		Position: req.Position,
	}
	if err := h.service.CreateField(c.Context(), field); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fieldResponse(field)})
}

// ListFields GET /custom-fields.
func (h *AccountsHandler) ListFields(c *fiber.Ctx) error {
	fields, err := h.service.ListFields(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.FieldResponse, 0, len(fields))
	for i := range fields {
		items = append(items, fieldResponse(&fields[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetFieldValue PUT /accounts/:id/custom-fields/:fieldId.
func (h *AccountsHandler) SetFieldValue(c *fiber.Ctx) error {
	var req dto.SetFieldValueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	value := &domain.CustomFieldValue{
		SurgeonID: c.Params("id"),
		FieldID:   c.Params("fieldId"),
		Value:     req.Value,
	}
	if err := h.service.SetFieldValue(c.Context(), value); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRegions GET /regions.
func (h *AccountsHandler) ListRegions(c *fiber.Ctx) error {
	regions, err := h.service.ListRegions(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RegionResponse, 0, len(regions))
	for _, region := range regions {
		items = append(items, dto.RegionResponse{ID: region.ID, Name: region.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateRegion POST /regions.
func (h *AccountsHandler) CreateRegion(c *fiber.Ctx) error {
	var req dto.CreateRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	region := &domain.Region{Name: req.Name}
	if err := h.service.CreateRegion(c.Context(), region); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RegionResponse{ID: region.ID, Name: region.Name}})
}

func callLogResponse(log *domain.CallLog) dto.CallLogResponse {
	return dto.CallLogResponse{
		ID:        log.ID,
		AccountID: log.SurgeonID,
		LoggedBy:  log.LoggedBy,
		CalledAt:  log.CalledAt,
		Notes:     log.Notes,
	}
}

func fieldResponse(field *domain.CustomField) dto.FieldResponse {
	return dto.FieldResponse{
		ID:       field.ID,
		Name:     field.Name,
		Type:     field.Type,
		Options:  field.Options,
		Position: field.Position,
	}
}
