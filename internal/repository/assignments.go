package repository

import (
	"context"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

const assignmentColumns = `
	a.id,
	a.staff_id,
	s.full_name,
	s.role,
	s.employment_type,
	a.work_date,
	a.shift_template_id,
	a.status,
	a.notes,
	a.created_at,
	a.version
`

func scanAssignment(scan func(dst ...any) error) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	dst := []any{
		&a.ID,
		&a.StaffID,
		&a.StaffFullName,
		&a.StaffRole,
		&a.EmploymentType,
		&a.WorkDate,
		&a.ShiftTemplateID,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAssignment ghi một bản ghi phân ca mới. Ràng buộc duy nhất
// (staff_id, work_date, shift_template_id) ở tầng database bảo đảm một nhân viên
// không bị phân hai lần vào cùng một (ngày, ca); vi phạm sẽ trả về *pgconn.PgError
// để handler chuyển thành thông báo xung đột.
func (r *Repository) CreateAssignment(a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO assignments (staff_id, work_date, shift_template_id, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{a.StaffID, a.WorkDate, a.ShiftTemplateID, a.Status, a.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN staffs s ON a.staff_id = s.id
		WHERE a.id = $1
	`

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanAssignment(row.Scan)
}

// GetAssignmentsInRange trả về mọi bản ghi phân ca có ngày nằm trong [start, end]
func (r *Repository) GetAssignmentsInRange(start, end domain.Date) ([]*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN staffs s ON a.staff_id = s.id
		WHERE a.work_date BETWEEN $1 AND $2
		ORDER BY a.work_date, a.shift_template_id, a.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetAssignmentsByStaff lọc thêm theo nhân viên, dùng cho kiểm tra giới hạn tuần
func (r *Repository) GetAssignmentsByStaff(staffID int64, start, end domain.Date) ([]*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN staffs s ON a.staff_id = s.id
		WHERE a.staff_id = $1 AND a.work_date BETWEEN $2 AND $3
		ORDER BY a.work_date, a.shift_template_id, a.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) UpdateAssignment(a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE assignments
		SET
			status = $1,
			notes = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	args := []any{a.Status, a.Notes, a.ID, a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.Version); err != nil {
		return err
	}

	return nil
}

// DeleteAssignment xoá một bản ghi phân ca, trả về sql.ErrNoRows nếu không tồn tại
func (r *Repository) DeleteAssignment(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM assignments WHERE id = $1 RETURNING id
	`

	var deletedID int64
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&deletedID); err != nil {
		return err
	}

	return nil
}
