package overrides

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/selection-engine/internal/domain"
	overrideRepo "github.com/glowbook/selection-engine/internal/infra/storage/override"
	"github.com/glowbook/selection-engine/internal/service/overrides/models"
	"github.com/glowbook/selection-engine/pkg/ptr"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	overrides map[string]*domain.StaffOverride // ключ serviceID+"/"+professionalID
	nextID    int64
	err       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{overrides: make(map[string]*domain.StaffOverride)}
}

func (f *fakeRepo) Upsert(_ context.Context, o *domain.StaffOverride) (*domain.StaffOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := o.ServiceID + "/" + o.ProfessionalID
	if existing, ok := f.overrides[key]; ok {
		o.ID = existing.ID
	} else {
		f.nextID++
		o.ID = f.nextID
	}
	f.overrides[key] = o
	return o, nil
}

func (f *fakeRepo) GetByServiceAndProfessional(_ context.Context, serviceID, professionalID string) (*domain.StaffOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	if o, ok := f.overrides[serviceID+"/"+professionalID]; ok {
		return o, nil
	}
	return nil, overrideRepo.ErrOverrideNotFound
}

func (f *fakeRepo) GetAllByService(_ context.Context, serviceID string) ([]*domain.StaffOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.StaffOverride
	for _, o := range f.overrides {
		if o.ServiceID == serviceID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeRepo) Delete(_ context.Context, serviceID, professionalID string) error {
	if f.err != nil {
		return f.err
	}
	key := serviceID + "/" + professionalID
	if _, ok := f.overrides[key]; !ok {
		return overrideRepo.ErrOverrideNotFound
	}
	delete(f.overrides, key)
	return nil
}

type fakeResolver struct {
	dropAllCalls int
}

func (f *fakeResolver) DropAll() { f.dropAllCalls++ }

func newTestService() (*Service, *fakeRepo, *fakeResolver) {
	repo := newFakeRepo()
	resolver := &fakeResolver{}
	return NewService(repo, resolver, testLogger{}), repo, resolver
}

func TestUpsert_CreateAndOverwrite(t *testing.T) {
	svc, _, resolver := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, &models.UpsertOverrideRequest{
		ServiceID:       "svc-1",
		ProfessionalID:  "pro-1",
		Name:            "Стрижка у топ-мастера",
		Price:           ptr.Ptr(3000.0),
		DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 1, resolver.dropAllCalls)

	// Повторная запись той же пары перезаписывает значения, ID сохраняется
	updated, err := svc.Upsert(ctx, &models.UpsertOverrideRequest{
		ServiceID:      "svc-1",
		ProfessionalID: "pro-1",
		Name:           "Стрижка у топ-мастера",
		Price:          ptr.Ptr(3500.0),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 3500.0, *updated.Price)
	assert.Nil(t, updated.DurationMinutes)
	assert.Equal(t, 2, resolver.dropAllCalls)
}

func TestUpsert_Validation(t *testing.T) {
	svc, _, resolver := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.UpsertOverrideRequest
	}{
		{"missing serviceID", &models.UpsertOverrideRequest{ProfessionalID: "pro-1", Name: "X"}},
		{"missing professionalID", &models.UpsertOverrideRequest{ServiceID: "svc-1", Name: "X"}},
		{"missing name", &models.UpsertOverrideRequest{ServiceID: "svc-1", ProfessionalID: "pro-1"}},
		{"negative price", &models.UpsertOverrideRequest{ServiceID: "svc-1", ProfessionalID: "pro-1", Name: "X", Price: ptr.Ptr(-1.0)}},
		{"zero duration", &models.UpsertOverrideRequest{ServiceID: "svc-1", ProfessionalID: "pro-1", Name: "X", DurationMinutes: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, resolver.dropAllCalls)
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.UpsertOverrideRequest{
		ServiceID:      "svc-1",
		ProfessionalID: "pro-1",
		Name:           "Стрижка",
		Price:          ptr.Ptr(3000.0),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "svc-1", "pro-1")
	require.NoError(t, err)
	assert.Equal(t, "Стрижка", got.Name)

	_, err = svc.Get(ctx, "svc-1", "pro-ghost")
	assert.ErrorIs(t, err, ErrOverrideNotFound)

	_, err = svc.Get(ctx, "", "pro-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAllByService(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, pro := range []string{"pro-1", "pro-2"} {
		_, err := svc.Upsert(ctx, &models.UpsertOverrideRequest{
			ServiceID:      "svc-1",
			ProfessionalID: pro,
			Name:           "Стрижка",
		})
		require.NoError(t, err)
	}

	list, err := svc.GetAllByService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Len(t, list.Overrides, 2)

	list, err = svc.GetAllByService(ctx, "svc-empty")
	require.NoError(t, err)
	assert.Empty(t, list.Overrides)
}

func TestDelete(t *testing.T) {
	svc, repo, resolver := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.UpsertOverrideRequest{
		ServiceID:      "svc-1",
		ProfessionalID: "pro-1",
		Name:           "Стрижка",
	})
	require.NoError(t, err)
	dropsBefore := resolver.dropAllCalls

	require.NoError(t, svc.Delete(ctx, "svc-1", "pro-1"))
	assert.Empty(t, repo.overrides)
	assert.Equal(t, dropsBefore+1, resolver.dropAllCalls)

	assert.ErrorIs(t, svc.Delete(ctx, "svc-1", "pro-1"), ErrOverrideNotFound)
}

func TestRepositoryErrorWrapped(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.err = errors.New("db down")

	_, err := svc.Get(context.Background(), "svc-1", "pro-1")
	assert.ErrorIs(t, err, ErrInternal)
}
