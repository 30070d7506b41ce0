package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// GetSettings đọc bản ghi cấu hình duy nhất của cửa hàng.
// Khi bảng còn trống thì trả về giá trị mặc định từ config thay vì lỗi.
func (r *Repository) GetSettings() (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT weekly_shift_cap, version FROM settings WHERE id = 1
	`

	settings := &domain.Settings{}
	err := r.dbpool.QueryRowContext(ctx, query).Scan(&settings.WeeklyShiftCap, &settings.Version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &domain.Settings{WeeklyShiftCap: r.cfg.Schedule.DefaultWeeklyShiftCap}, nil
	case err != nil:
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpdateSettings(settings *domain.Settings) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO settings (id, weekly_shift_cap)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE
		SET weekly_shift_cap = EXCLUDED.weekly_shift_cap, version = settings.version + 1
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, settings.WeeklyShiftCap).Scan(&settings.Version); err != nil {
		return err
	}

	return nil
}
