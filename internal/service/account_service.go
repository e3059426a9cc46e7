package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// ImportResult reports both halves of a spreadsheet import.
type ImportResult struct {
	Accounts   repository.BulkResult
	Procedures repository.BulkResult
}

// AccountService owns account records and the data hanging off them: call
// activity, custom fields and imports.
type AccountService struct {
	surgeons repository.SurgeonRepository
	calls    repository.CallLogRepository
	fields   repository.CustomFieldRepository
	regions  repository.RegionRepository
	logger   *zap.Logger
}

// AccountDependencies bundles repositories.
type AccountDependencies struct {
	SurgeonRepo     repository.SurgeonRepository
	CallLogRepo     repository.CallLogRepository
	CustomFieldRepo repository.CustomFieldRepository
	RegionRepo      repository.RegionRepository
	Logger          *zap.Logger
}

// NewAccountService creates the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		surgeons: deps.SurgeonRepo,
		calls:    deps.CallLogRepo,
		fields:   deps.CustomFieldRepo,
		regions:  deps.RegionRepo,
		logger:   deps.Logger,
	}
}

// Get returns one account with its custom field values.
func (s *AccountService) Get(ctx context.Context, accountID string) (*domain.Surgeon, []domain.CustomFieldValue, error) {
	account, err := s.surgeons.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("account", map[string]any{"account_id": accountID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	values, err := s.fields.ListValuesForSurgeon(ctx, accountID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return account, values, nil
}

// LogCall records one call against an account.
func (s *AccountService) LogCall(ctx context.Context, log *domain.CallLog) error {
	if log.SurgeonID == "" || log.LoggedBy == "" {
		return apperrors.NewValidationError("account and caller required", nil)
	}
	if err := s.calls.Create(ctx, log); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListCalls returns recent call activity for an account.
func (s *AccountService) ListCalls(ctx context.Context, accountID string, limit int) ([]domain.CallLog, error) {
	logs, err := s.calls.ListBySurgeon(ctx, accountID, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return logs, nil
}

// Import upserts pre-parsed spreadsheet rows. Accounts go first so procedure
// rows land on existing accounts; either phase aborts on its first failed
// write and reports how far it got.
func (s *AccountService) Import(ctx context.Context, accounts []domain.Surgeon, procedures []domain.ProcedureVolume) (ImportResult, error) {
	result := ImportResult{}
	if len(accounts) == 0 && len(procedures) == 0 {
		return result, apperrors.NewValidationError("no rows to import", nil)
	}

	accountsApplied, err := s.surgeons.UpsertAccounts(ctx, accounts)
	result.Accounts = accountsApplied
	if err != nil {
		return result, apperrors.NewPartialFailure("import accounts", accountsApplied.Applied, accountsApplied.Total, err)
	}

	proceduresApplied, err := s.surgeons.UpsertProcedures(ctx, procedures)
	result.Procedures = proceduresApplied
	if err != nil {
		return result, apperrors.NewPartialFailure("import procedures", proceduresApplied.Applied, proceduresApplied.Total, err)
	}

	s.logger.Info("import applied",
		zap.Int("accounts", accountsApplied.Applied),
		zap.Int("procedures", proceduresApplied.Applied))
	return result, nil
}

// CreateField defines a new custom field.
func (s *AccountService) CreateField(ctx context.Context, field *domain.CustomField) error {
	if strings.TrimSpace(field.Name) == "" {
		return apperrors.NewValidationError("field name required", nil)
	}
	if !field.Type.Valid() {
		return apperrors.NewValidationError("unknown field type", map[string]any{"type": string(field.Type)})
	}
	if field.Type == domain.CustomFieldDropdown && len(field.Options) == 0 {
		return apperrors.NewValidationError("dropdown fields require options", nil)
	}
	if err := s.fields.CreateField(ctx, field); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListFields returns the defined custom fields in display order.
func (s *AccountService) ListFields(ctx context.Context) ([]domain.CustomField, error) {
	fields, err := s.fields.ListFields(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return fields, nil
}

// SetFieldValue writes one field value on an account. Values are stored as
// opaque strings; typed rendering is the consumer's concern.
func (s *AccountService) SetFieldValue(ctx context.Context, value *domain.CustomFieldValue) error {
	if value.SurgeonID == "" || value.FieldID == "" {
		return apperrors.NewValidationError("account and field required", nil)
	}
	if err := s.fields.UpsertValue(ctx, value); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListRegions returns all regions.
func (s *AccountService) ListRegions(ctx context.Context) ([]domain.Region, error) {
	regions, err := s.regions.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return regions, nil
}

// CreateRegion defines a new region.
func (s *AccountService) CreateRegion(ctx context.Context, region *domain.Region) error {
	if strings.TrimSpace(region.Name) == "" {
		return apperrors.NewValidationError("region name required", nil)
	}
	if err := s.regions.Create(ctx, region); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
