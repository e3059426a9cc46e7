package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

type fakeSurgeonRepo struct {
	getByIDFn          func(ctx context.Context, id string) (*domain.Surgeon, error)
	upsertAccountsFn   func(ctx context.Context, accounts []domain.Surgeon) (repository.BulkResult, error)
	upsertProceduresFn func(ctx context.Context, procedures []domain.ProcedureVolume) (repository.BulkResult, error)
}

func (f *fakeSurgeonRepo) GetByID(ctx context.Context, id string) (*domain.Surgeon, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &domain.Surgeon{ID: id}, nil
}
func (f *fakeSurgeonRepo) ListAll(ctx context.Context) ([]domain.Surgeon, error) { return nil, nil }
func (f *fakeSurgeonRepo) ListRegionLinks(ctx context.Context) ([]domain.SurgeonRegion, error) {
	return nil, nil
}
func (f *fakeSurgeonRepo) ListProcedures(ctx context.Context) ([]domain.ProcedureVolume, error) {
	return nil, nil
}
func (f *fakeSurgeonRepo) ListPrices(ctx context.Context) ([]domain.CPTPrice, error) {
	return nil, nil
}
func (f *fakeSurgeonRepo) UpsertAccounts(ctx context.Context, accounts []domain.Surgeon) (repository.BulkResult, error) {
	if f.upsertAccountsFn != nil {
		return f.upsertAccountsFn(ctx, accounts)
	}
	return repository.BulkResult{Applied: len(accounts), Total: len(accounts)}, nil
}
func (f *fakeSurgeonRepo) UpsertProcedures(ctx context.Context, procedures []domain.ProcedureVolume) (repository.BulkResult, error) {
	if f.upsertProceduresFn != nil {
		return f.upsertProceduresFn(ctx, procedures)
	}
	return repository.BulkResult{Applied: len(procedures), Total: len(procedures)}, nil
}
func (f *fakeSurgeonRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCustomFieldRepo struct {
	createFieldFn func(ctx context.Context, field *domain.CustomField) error
	upsertValueFn func(ctx context.Context, value *domain.CustomFieldValue) error
}

func (f *fakeCustomFieldRepo) CreateField(ctx context.Context, field *domain.CustomField) error {
	if f.createFieldFn != nil {
		return f.createFieldFn(ctx, field)
	}
	return nil
}
func (f *fakeCustomFieldRepo) ListFields(ctx context.Context) ([]domain.CustomField, error) {
	return nil, nil
}
func (f *fakeCustomFieldRepo) UpsertValue(ctx context.Context, value *domain.CustomFieldValue) error {
	if f.upsertValueFn != nil {
		return f.upsertValueFn(ctx, value)
	}
	return nil
}
func (f *fakeCustomFieldRepo) ListValuesForSurgeon(ctx context.Context, surgeonID string) ([]domain.CustomFieldValue, error) {
	return nil, nil
}

type fakeCallLogRepo struct {
	createFn func(ctx context.Context, log *domain.CallLog) error
}

func (f *fakeCallLogRepo) Create(ctx context.Context, log *domain.CallLog) error {
	if f.createFn != nil {
		return f.createFn(ctx, log)
	}
	return nil
}
func (f *fakeCallLogRepo) ListBySurgeon(ctx context.Context, surgeonID string, limit int) ([]domain.CallLog, error) {
	return nil, nil
}
func (f *fakeCallLogRepo) LatestByPerson(ctx context.Context) (map[string]time.Time, error) {
	return nil, nil
}

type fakeRegionRepo struct{}

func (f *fakeRegionRepo) Create(ctx context.Context, region *domain.Region) error { return nil }
func (f *fakeRegionRepo) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	return &domain.Region{ID: id}, nil
}
func (f *fakeRegionRepo) ListAll(ctx context.Context) ([]domain.Region, error) { return nil, nil }

func newAccountService(surgeons *fakeSurgeonRepo, fields *fakeCustomFieldRepo) *AccountService {
	return NewAccountService(AccountDependencies{
		SurgeonRepo:     surgeons,
		CallLogRepo:     &fakeCallLogRepo{},
		CustomFieldRepo: fields,
		RegionRepo:      &fakeRegionRepo{},
		Logger:          zap.NewNop(),
	})
}

func TestImportAbortsOnAccountPhaseFailure(t *testing.T) {
	proceduresCalled := false
	surgeons := &fakeSurgeonRepo{
		upsertAccountsFn: func(ctx context.Context, accounts []domain.Surgeon) (repository.BulkResult, error) {
			return repository.BulkResult{Applied: 2, Total: len(accounts)}, errors.New("row 3 failed")
		},
		upsertProceduresFn: func(ctx context.Context, procedures []domain.ProcedureVolume) (repository.BulkResult, error) {
			proceduresCalled = true
			return repository.BulkResult{}, nil
		},
	}
	svc := newAccountService(surgeons, &fakeCustomFieldRepo{})

	accounts := []domain.Surgeon{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	result, err := svc.Import(context.Background(), accounts, []domain.ProcedureVolume{{SurgeonID: "a"}})
	require.Error(t, err)
	require.False(t, proceduresCalled, "procedure phase must not run after account phase failure")
	require.Equal(t, 2, result.Accounts.Applied)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "PARTIAL_FAILURE", domainErr.Code)
	require.Equal(t, 2, domainErr.Details["applied"])
	require.Equal(t, 3, domainErr.Details["total"])
}

func TestImportEmptyRejected(t *testing.T) {
	svc := newAccountService(&fakeSurgeonRepo{}, &fakeCustomFieldRepo{})

	_, err := svc.Import(context.Background(), nil, nil)
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCreateFieldValidation(t *testing.T) {
	svc := newAccountService(&fakeSurgeonRepo{}, &fakeCustomFieldRepo{})

	err := svc.CreateField(context.Background(), &domain.CustomField{Name: " ", Type: domain.CustomFieldText})
	require.Error(t, err)

	err = svc.CreateField(context.Background(), &domain.CustomField{Name: "Segment", Type: "color"})
	require.Error(t, err)

	err = svc.CreateField(context.Background(), &domain.CustomField{Name: "Segment", Type: domain.CustomFieldDropdown})
	require.Error(t, err)

	err = svc.CreateField(context.Background(), &domain.CustomField{
		Name: "Segment", Type: domain.CustomFieldDropdown, Options: []string{"A", "B"},
	})
	require.NoError(t, err)
}

func TestSetFieldValueRequiresKeys(t *testing.T) {
	svc := newAccountService(&fakeSurgeonRepo{}, &fakeCustomFieldRepo{})

	err := svc.SetFieldValue(context.Background(), &domain.CustomFieldValue{SurgeonID: "", FieldID: "f1"})
	require.Error(t, err)

	err = svc.SetFieldValue(context.Background(), &domain.CustomFieldValue{SurgeonID: "s1", FieldID: "f1", Value: "High"})
	require.NoError(t, err)
}
