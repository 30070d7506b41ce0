package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

func (r *Repository) GetAllShiftTemplates() ([]*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.id,
			st.name,
			st.start_time,
			st.end_time,
			st.display_order,
			st.created_at,
			st.version,
			str.role,
			str.required_number
		FROM shift_templates st
		LEFT JOIN shift_template_requirements str ON st.id = str.template_id
		ORDER BY st.display_order, str.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	var current *domain.ShiftTemplate

	for rows.Next() {
		var row struct {
			ID           int64
			Name         string
			StartTime    string
			EndTime      string
			DisplayOrder int32
			CreatedAt    time.Time
			Version      int32

			Role     sql.NullString
			Required sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.StartTime,
			&row.EndTime,
			&row.DisplayOrder,
			&row.CreatedAt,
			&row.Version,
			&row.Role,
			&row.Required,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if current == nil || current.ID != row.ID {
			// lần đầu gặp template này, khởi tạo rồi thêm vào kết quả
			current = &domain.ShiftTemplate{
				ID:           row.ID,
				Name:         row.Name,
				StartTime:    row.StartTime,
				EndTime:      row.EndTime,
				DisplayOrder: row.DisplayOrder,
				CreatedAt:    row.CreatedAt,
				Version:      row.Version,
				Requirements: make([]domain.RoleRequirement, 0),
			}
			templates = append(templates, current)
		}

		// role rỗng nghĩa là template chưa có yêu cầu nhân sự nào
		if !row.Role.Valid {
			continue
		}

		current.Requirements = append(current.Requirements, domain.RoleRequirement{
			Role:     domain.Role(row.Role.String),
			Required: row.Required.Int32,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) GetShiftTemplate(id int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			st.name,
			st.start_time,
			st.end_time,
			st.display_order,
			st.created_at,
			st.version,
			str.role,
			str.required_number
		FROM shift_templates st
		LEFT JOIN shift_template_requirements str ON st.id = str.template_id
		WHERE st.id = $1
		ORDER BY str.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := &domain.ShiftTemplate{
		ID:           id,
		Requirements: make([]domain.RoleRequirement, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			Name         string
			StartTime    string
			EndTime      string
			DisplayOrder int32
			CreatedAt    time.Time
			Version      int32

			Role     sql.NullString
			Required sql.NullInt32
		}

		dst := []any{
			&row.Name,
			&row.StartTime,
			&row.EndTime,
			&row.DisplayOrder,
			&row.CreatedAt,
			&row.Version,
			&row.Role,
			&row.Required,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			st.Name = row.Name
			st.StartTime = row.StartTime
			st.EndTime = row.EndTime
			st.DisplayOrder = row.DisplayOrder
			st.CreatedAt = row.CreatedAt
			st.Version = row.Version
			found = true
		}

		if !row.Role.Valid {
			continue
		}

		st.Requirements = append(st.Requirements, domain.RoleRequirement{
			Role:     domain.Role(row.Role.String),
			Required: row.Required.Int32,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return st, nil
}

func (r *Repository) CountShiftTemplates() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, `SELECT COUNT(*) FROM shift_templates`).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CreateShiftTemplate(st *domain.ShiftTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// ca mới luôn đứng cuối danh sách hiển thị
	query := `
		INSERT INTO shift_templates (name, start_time, end_time, display_order)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM shift_templates))
		RETURNING id, display_order, created_at, version
	`
	args := []any{st.Name, st.StartTime, st.EndTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.DisplayOrder, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	for i, req := range st.Requirements {
		query = `
			INSERT INTO shift_template_requirements (template_id, role, required_number, position)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, st.ID, req.Role, req.Required, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShiftTemplate(st *domain.ShiftTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shift_templates
		SET
			name = $1,
			start_time = $2,
			end_time = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	args := []any{st.Name, st.StartTime, st.EndTime, st.ID, st.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&st.Version); err != nil {
		return err
	}

	// thay toàn bộ danh sách yêu cầu nhân sự bằng danh sách mới
	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_template_requirements WHERE template_id = $1`, st.ID); err != nil {
		return err
	}

	for i, req := range st.Requirements {
		query = `
			INSERT INTO shift_template_requirements (template_id, role, required_number, position)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, st.ID, req.Role, req.Required, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// DeleteShiftTemplate xoá một mẫu ca và đánh lại display_order của các ca còn lại
// để dãy thứ tự hiển thị luôn liên tục.
func (r *Repository) DeleteShiftTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var removedOrder int32
	query := `DELETE FROM shift_templates WHERE id = $1 RETURNING display_order`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&removedOrder); err != nil {
		return err
	}

	query = `UPDATE shift_templates SET display_order = display_order - 1 WHERE display_order > $1`
	if _, err := tx.ExecContext(ctx, query, removedOrder); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// SwapShiftTemplateOrder đổi thứ tự hiển thị của một mẫu ca với ca liền kề.
// offset là -1 (đẩy lên) hoặc +1 (đẩy xuống). Ở biên danh sách thì không làm gì.
func (r *Repository) SwapShiftTemplateOrder(id int64, offset int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var currentOrder int32
	if err := tx.QueryRowContext(ctx, `SELECT display_order FROM shift_templates WHERE id = $1`, id).Scan(&currentOrder); err != nil {
		return err
	}

	var neighborID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM shift_templates WHERE display_order = $1`, currentOrder+offset).Scan(&neighborID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// đã ở đầu hoặc cuối danh sách
		return nil
	case err != nil:
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE shift_templates SET display_order = $1 WHERE id = $2`, currentOrder, neighborID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE shift_templates SET display_order = $1 WHERE id = $2`, currentOrder+offset, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
