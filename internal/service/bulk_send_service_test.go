package service

import (
	"context"
	"errors"
	"testing"

	"relief-dispatch/internal/area"
	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBeneficiaryLookup struct {
	mock.Mock
}

func (m *mockBeneficiaryLookup) ListByArea(ctx context.Context, a domain.AreaNames) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, a)
	if v := args.Get(0); v != nil {
		return v.([]domain.Beneficiary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBeneficiaryLookup) CountByArea(ctx context.Context, a domain.AreaNames) (repository.AreaCount, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(repository.AreaCount), args.Error(1)
}

type mockTemplatesRepo struct {
	mock.Mock
}

func (m *mockTemplatesRepo) ListSelectable(ctx context.Context, organizationID string) ([]domain.PackageTemplate, error) {
	args := m.Called(ctx, organizationID)
	if v := args.Get(0); v != nil {
		return v.([]domain.PackageTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplatesRepo) GetTemplate(ctx context.Context, templateID string) (*domain.PackageTemplate, error) {
	args := m.Called(ctx, templateID)
	if v := args.Get(0); v != nil {
		return v.(*domain.PackageTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

var testActor = domain.Actor{ID: "org-001", Name: "Relief Organization", Type: domain.RequesterTypeOrganization}

func newTestService(t *testing.T, templates repository.TemplatesRepository, beneficiaries repository.BeneficiaryLookup) (BulkSendService, *repository.MemoryRequestsRepo) {
	t.Helper()
	catalog, err := geo.LoadDefault()
	require.NoError(t, err)
	requests := repository.NewMemoryRequestsRepo()
	svc := NewBulkSendService(Deps{
		Catalog:       catalog,
		Templates:     templates,
		Beneficiaries: beneficiaries,
		Requests:      requests,
		Actor:         testActor,
	}, zap.NewNop())
	return svc, requests
}

func TestSelectableTemplates(t *testing.T) {
	templates := &mockTemplatesRepo{}
	templates.On("ListSelectable", mock.Anything, "org-001").
		Return([]domain.PackageTemplate{{ID: "tpl-1", Name: "Food"}}, nil)
	svc, _ := newTestService(t, templates, &mockBeneficiaryLookup{})

	got, err := svc.SelectableTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tpl-1", got[0].ID)
	templates.AssertExpectations(t)
}

func TestSelectableTemplates_Error(t *testing.T) {
	templates := &mockTemplatesRepo{}
	templates.On("ListSelectable", mock.Anything, "org-001").Return(nil, errors.New("db down"))
	svc, _ := newTestService(t, templates, &mockBeneficiaryLookup{})

	_, err := svc.SelectableTemplates(context.Background())
	assert.Error(t, err)
}

func TestAreaOverview(t *testing.T) {
	lookup := &mockBeneficiaryLookup{}
	rimal := domain.AreaNames{Governorate: "Gaza", City: "Gaza City", District: "Al-Rimal"}
	lookup.On("CountByArea", mock.Anything, rimal).Return(repository.AreaCount{Total: 10, Verified: 7}, nil)
	svc, _ := newTestService(t, &mockTemplatesRepo{}, lookup)

	overview, err := svc.AreaOverview(context.Background(), area.Selection{
		GovernorateID: "gov-02", CityID: "city-0201", DistrictID: "dist-020101",
	})
	require.NoError(t, err)
	require.NotNil(t, overview)
	assert.Equal(t, rimal, overview.Area)
	assert.Equal(t, "Gaza - Gaza City - Al-Rimal", overview.AreaText)
	assert.Equal(t, 10, overview.BeneficiaryCount)
	assert.Equal(t, 7, overview.VerifiedCount)
	lookup.AssertExpectations(t)
}

func TestAreaOverview_IncompleteSelection(t *testing.T) {
	lookup := &mockBeneficiaryLookup{}
	svc, _ := newTestService(t, &mockTemplatesRepo{}, lookup)

	overview, err := svc.AreaOverview(context.Background(), area.Selection{GovernorateID: "gov-02", CityID: "city-0201"})
	require.NoError(t, err)
	assert.Nil(t, overview)

	// a district without its parents is not a selection
	overview, err = svc.AreaOverview(context.Background(), area.Selection{DistrictID: "dist-020101"})
	require.NoError(t, err)
	assert.Nil(t, overview)
	lookup.AssertNotCalled(t, "CountByArea", mock.Anything, mock.Anything)
}

func TestAreaOverview_LookupError(t *testing.T) {
	lookup := &mockBeneficiaryLookup{}
	lookup.On("CountByArea", mock.Anything, mock.Anything).Return(repository.AreaCount{}, errors.New("timeout"))
	svc, _ := newTestService(t, &mockTemplatesRepo{}, lookup)

	_, err := svc.AreaOverview(context.Background(), area.Selection{
		GovernorateID: "gov-05", CityID: "city-0501", DistrictID: "dist-050101",
	})
	assert.Error(t, err)
}

func TestNewDraft_EndToEnd(t *testing.T) {
	templates, err := repository.NewSeededTemplatesRepo()
	require.NoError(t, err)
	beneficiaries, err := repository.NewSeededBeneficiariesRepo()
	require.NoError(t, err)
	svc, _ := newTestService(t, templates, beneficiaries)
	ctx := context.Background()

	assert.Len(t, svc.Governorates(), 5)
	sel := svc.NewAreaSelection()
	sel.SelectGovernorate("gov-01")
	assert.Len(t, sel.Cities(), 3)

	d := svc.NewDraft()
	require.NoError(t, d.SelectTemplate("tpl-first-aid"))
	require.NoError(t, d.SelectGovernorate("gov-01"))
	require.NoError(t, d.SelectCity("city-0101"))
	require.NoError(t, d.SelectDistrict("dist-010101"))
	require.NoError(t, d.SetQuantity(12))
	require.NoError(t, d.SetPriority(domain.PriorityHigh))

	_, err = d.Prepare(ctx, false)
	require.NoError(t, err)
	summary, err := d.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "North Gaza - Jabalia - Jabalia Camp", summary.AreaText)
	assert.Equal(t, "1-2 days", summary.EstimatedDeliveryTime)

	pending, err := svc.PendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, summary.RequestID, pending[0].ID)
	assert.Equal(t, "org-001", pending[0].RequesterID)
	assert.Equal(t, 12*35.0, pending[0].EstimatedCost)
}
