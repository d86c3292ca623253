package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage/kv"
	"github.com/m04kA/BarberBookingService/internal/service/settings/models"
	"github.com/m04kA/BarberBookingService/pkg/logger"
	"github.com/m04kA/BarberBookingService/pkg/shortid"
)

type failingRepo struct{}

func (failingRepo) Get(context.Context) (*domain.ShopSettings, error) {
	return domain.DefaultSettings(), nil
}

func (failingRepo) Save(context.Context, *domain.ShopSettings) error {
	return errors.New("disk full")
}

func newService(t *testing.T) (*Service, *kv.SettingsRepository) {
	t.Helper()
	repo := kv.NewSettingsRepository(kv.NewMemoryStore())
	return NewService(repo, shortid.Random{Length: 6}, logger.Nop()), repo
}

func intPtr(v int) *int { return &v }

func validUpdate() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		Name:         "Barberia Nuova",
		Address:      "Via Verdi 1",
		OpenTime:     "8:30",
		CloseTime:    "18:00",
		SlotInterval: 15,
		ShowPrices:   false,
		SMSEnabled:   true,
		Services: []models.ServiceRequest{
			{ID: "1", Name: "Taglio", Price: 20, Duration: 30},
			{Name: "Barba", Price: 10, Duration: 15, CustomInterval: intPtr(20)},
		},
	}
}

func TestGet_DefaultsWhenNothingPersisted(t *testing.T) {
	svc, _ := newService(t)

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Barberia Smart", s.Name)
	assert.Len(t, s.Services, 3)

	// Get возвращает копию
	s.Services[0].Name = "changed"
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Taglio Classico", again.Services[0].Name)
}

func TestUpdate_PersistsAndNormalises(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	resp, err := svc.Update(ctx, validUpdate())
	require.NoError(t, err)
	assert.Equal(t, "08:30", resp.OpenTime)
	require.Len(t, resp.Services, 2)
	assert.NotEmpty(t, resp.Services[1].ID)
	require.NotNil(t, resp.Services[1].CustomInterval)
	assert.Equal(t, 20, *resp.Services[1].CustomInterval)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Barberia Nuova", stored.Name)
	assert.Equal(t, 15, stored.SlotIntervalMinutes)

	// Новый экземпляр сервиса читает сохранённое
	reloaded := NewService(repo, shortid.Random{Length: 6}, logger.Nop())
	require.NoError(t, reloaded.Load(ctx))
	s, err := reloaded.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Barberia Nuova", s.Name)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.UpdateSettingsRequest)
		wantErr error
	}{
		{"close before open", func(r *models.UpdateSettingsRequest) { r.CloseTime = "08:00" }, ErrInvalidHours},
		{"close equals open", func(r *models.UpdateSettingsRequest) { r.CloseTime = "08:30" }, ErrInvalidHours},
		{"malformed time", func(r *models.UpdateSettingsRequest) { r.OpenTime = "late" }, ErrInvalidHours},
		{"bad interval", func(r *models.UpdateSettingsRequest) { r.SlotInterval = 25 }, ErrInvalidInterval},
		{"empty name", func(r *models.UpdateSettingsRequest) { r.Name = " " }, ErrInvalidInput},
		{"negative price", func(r *models.UpdateSettingsRequest) { r.Services[0].Price = -1 }, ErrInvalidService},
		{"zero duration", func(r *models.UpdateSettingsRequest) { r.Services[0].Duration = 0 }, ErrInvalidService},
		{"duplicate ids", func(r *models.UpdateSettingsRequest) { r.Services[1].ID = "1" }, ErrInvalidService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			req := validUpdate()
			tt.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			// Настройки не изменились
			s, err := svc.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Barberia Smart", s.Name)
		})
	}
}

func TestServiceCatalog(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	added, err := svc.AddService(ctx, &models.ServiceRequest{Name: "Shampoo", Price: 8, Duration: 10})
	require.NoError(t, err)
	assert.Len(t, added.ID, 6)

	updated, err := svc.UpdateService(ctx, added.ID, &models.ServiceRequest{Name: "Shampoo Deluxe", Price: 12, Duration: 15})
	require.NoError(t, err)
	assert.Equal(t, "Shampoo Deluxe", updated.Name)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 12.0, *updated.Price)

	_, err = svc.UpdateService(ctx, "missing", &models.ServiceRequest{Name: "x", Duration: 10})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	require.NoError(t, svc.RemoveService(ctx, added.ID))
	assert.ErrorIs(t, svc.RemoveService(ctx, added.ID), ErrServiceNotFound)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, s.Services, 3)
}

func TestGetPublic_HidesPrices(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	public, err := svc.GetPublic(ctx)
	require.NoError(t, err)
	require.NotNil(t, public.Services[0].Price)

	_, err = svc.Update(ctx, validUpdate()) // showPrices=false
	require.NoError(t, err)

	public, err = svc.GetPublic(ctx)
	require.NoError(t, err)
	for _, s := range public.Services {
		assert.Nil(t, s.Price)
	}
}

func TestApply_SaveFailureKeepsState(t *testing.T) {
	svc := NewService(failingRepo{}, shortid.Random{Length: 6}, logger.Nop())
	ctx := context.Background()

	_, err := svc.AddService(ctx, &models.ServiceRequest{Name: "Shampoo", Price: 8, Duration: 10})
	assert.ErrorIs(t, err, ErrInternal)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, s.Services, 3)
}
