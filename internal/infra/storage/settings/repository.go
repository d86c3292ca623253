package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BarberBookingService/internal/domain"
	"github.com/m04kA/BarberBookingService/internal/infra/storage"
	"github.com/m04kA/BarberBookingService/pkg/psqlbuilder"
	"github.com/m04kA/BarberBookingService/pkg/txmanager"
)

const (
	settingsTable = "shop_settings"
	servicesTable = "shop_services"

	// Настройки магазина хранятся одной строкой
	singletonID = 1
)

// Repository репозиторий настроек магазина в Postgres
type Repository struct {
	db        txmanager.DBExecutor
	txManager TxManager
}

// TxManager нужен, чтобы настройки и каталог услуг сохранялись атомарно
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db txmanager.DBExecutor, txManager TxManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// Get возвращает настройки вместе с каталогом услуг или storage.ErrSettingsNotFound
func (r *Repository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"name",
		"address",
		"phone",
		"open_time",
		"close_time",
		"slot_interval",
		"show_prices",
		"sms_enabled",
	).
		From(settingsTable).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ShopSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Name,
		&s.Address,
		&s.Phone,
		&s.OpenTime,
		&s.CloseTime,
		&s.SlotIntervalMinutes,
		&s.ShowPrices,
		&s.SMSEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	services, err := r.getServices(ctx, executor)
	if err != nil {
		return nil, err
	}
	s.Services = services

	return &s, nil
}

// Save перезаписывает настройки и каталог услуг в одной транзакции
func (r *Repository) Save(ctx context.Context, s *domain.ShopSettings) error {
	return r.txManager.Do(ctx, func(ctx context.Context) error {
		executor := txmanager.GetExecutor(ctx, r.db)

		query, args, err := psqlbuilder.Insert(settingsTable).
			Columns("id", "name", "address", "phone", "open_time", "close_time", "slot_interval", "show_prices", "sms_enabled").
			Values(singletonID, s.Name, s.Address, s.Phone, s.OpenTime, s.CloseTime, s.SlotIntervalMinutes, s.ShowPrices, s.SMSEnabled).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				address = EXCLUDED.address,
				phone = EXCLUDED.phone,
				open_time = EXCLUDED.open_time,
				close_time = EXCLUDED.close_time,
				slot_interval = EXCLUDED.slot_interval,
				show_prices = EXCLUDED.show_prices,
				sms_enabled = EXCLUDED.sms_enabled,
				updated_at = NOW()`).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
		}

		// Каталог перезаписывается целиком
		query, args, err = psqlbuilder.Delete(servicesTable).ToSql()
		if err != nil {
			return fmt.Errorf("%w: Save - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Save - clear services: %v", ErrExecQuery, err)
		}

		if len(s.Services) == 0 {
			return nil
		}

		insert := psqlbuilder.Insert(servicesTable).
			Columns("id", "position", "name", "price", "duration", "custom_interval")
		for i, svc := range s.Services {
			var interval sql.NullInt64
			if svc.HasCustomInterval() {
				interval = sql.NullInt64{Int64: int64(*svc.CustomIntervalMinutes), Valid: true}
			}
			insert = insert.Values(svc.ID, i, svc.Name, svc.Price, svc.DurationMinutes, interval)
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Save - build services insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Save - insert services: %v", ErrExecQuery, err)
		}

		return nil
	})
}

func (r *Repository) getServices(ctx context.Context, executor txmanager.DBExecutor) ([]domain.Service, error) {
	query, args, err := psqlbuilder.Select("id", "name", "price", "duration", "custom_interval").
		From(servicesTable).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var interval sql.NullInt64
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.DurationMinutes, &interval); err != nil {
			return nil, fmt.Errorf("%w: getServices - scan service: %v", ErrScanRow, err)
		}
		if interval.Valid {
			v := int(interval.Int64)
			svc.CustomIntervalMinutes = &v
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
