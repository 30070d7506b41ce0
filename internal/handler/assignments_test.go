package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart-vn/backoffice/backend/internal/config"
	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// fakeRepository giữ sổ phân ca trong bộ nhớ và mô phỏng các lỗi mà
// tầng database trả về (ràng buộc duy nhất, không tìm thấy bản ghi).
// Các method không được cài đặt sẽ panic qua interface nhúng.
type fakeRepository struct {
	Repository

	staffs    map[int64]*domain.Staff
	templates map[int64]*domain.ShiftTemplate
	settings  *domain.Settings

	nextID      int64
	assignments []*domain.Assignment
}

func (f *fakeRepository) GetStaffByID(id int64) (*domain.Staff, error) {
	staff, ok := f.staffs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return staff, nil
}

func (f *fakeRepository) GetShiftTemplate(id int64) (*domain.ShiftTemplate, error) {
	st, ok := f.templates[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return st, nil
}

func (f *fakeRepository) GetSettings() (*domain.Settings, error) {
	return f.settings, nil
}

func (f *fakeRepository) CreateAssignment(a *domain.Assignment) error {
	for _, existing := range f.assignments {
		if existing.StaffID == a.StaffID && existing.WorkDate.Equal(a.WorkDate.Time) && existing.ShiftTemplateID == a.ShiftTemplateID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "assignments_staff_id_work_date_shift_template_id_key"}
		}
	}

	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	copied := *a
	f.assignments = append(f.assignments, &copied)
	return nil
}

func (f *fakeRepository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepository) GetAssignmentsInRange(start, end domain.Date) ([]*domain.Assignment, error) {
	result := make([]*domain.Assignment, 0)
	for _, a := range f.assignments {
		if a.WorkDate.InRange(start, end) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepository) GetAssignmentsByStaff(staffID int64, start, end domain.Date) ([]*domain.Assignment, error) {
	result := make([]*domain.Assignment, 0)
	for _, a := range f.assignments {
		if a.StaffID == staffID && a.WorkDate.InRange(start, end) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepository) DeleteAssignment(id int64) error {
	for i, a := range f.assignments {
		if a.ID == id {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakePublisher struct {
	published []amqp.Publishing
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	f.published = append(f.published, msg)
	return nil
}

// newLedgerFixture: ca sáng cần 2 nhân viên bán hàng, nhân viên 1 bán hàng,
// nhân viên 2 là quản lý (không có trong yêu cầu của ca).
func newLedgerFixture() *fakeRepository {
	return &fakeRepository{
		staffs: map[int64]*domain.Staff{
			1: {ID: 1, Username: "tuannv1", FullName: "Nguyễn Văn Tuấn", Email: "tuannv1@minimart.vn", Role: domain.RoleSales, EmploymentType: domain.EmploymentFullTime, IsActive: true},
			2: {ID: 2, Username: "huongdt2", FullName: "Đặng Thị Hương", Email: "huongdt2@minimart.vn", Role: domain.RoleManager, EmploymentType: domain.EmploymentFullTime, IsActive: true},
		},
		templates: map[int64]*domain.ShiftTemplate{
			1: {
				ID:        1,
				Name:      "Ca sáng",
				StartTime: "08:00",
				EndTime:   "12:00",
				Requirements: []domain.RoleRequirement{
					{Role: domain.RoleSales, Required: 2},
				},
			},
		},
		settings: &domain.Settings{WeeklyShiftCap: 6},
	}
}

func newTestHandler(t *testing.T, repo Repository) (*Handler, *fakePublisher) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.RabbitMQ.PublishTimeout = 1

	publisher := &fakePublisher{}
	h, err := NewHandler(cfg, repo, publisher, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, publisher
}

func managerCookie(t *testing.T, secret string) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(domain.RoleManager),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   "2",
		},
	})
	ss, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return &http.Cookie{Name: authCookieName, Value: ss}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, h *Handler, method, target string, body any) envelope {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.AddCookie(managerCookie(t, "test-secret"))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestCreateAssignmentDuplicateConflict(t *testing.T) {
	h, _ := newTestHandler(t, newLedgerFixture())

	body := map[string]any{"staffID": 1, "date": "02-06-2025", "shiftTemplateID": 1}

	env := doJSON(t, h, http.MethodPost, "/assignments", body)
	require.True(t, env.Success, env.Message)

	// cùng (nhân viên, ngày, ca) lần thứ hai phải bị từ chối
	env = doJSON(t, h, http.MethodPost, "/assignments", body)
	assert.False(t, env.Success)
	assert.Equal(t, "nhân viên đã được phân vào ca này rồi", env.Message)
}

func TestDeleteAssignmentNotFound(t *testing.T) {
	h, _ := newTestHandler(t, newLedgerFixture())

	env := doJSON(t, h, http.MethodDelete, "/assignments/999", nil)
	assert.False(t, env.Success)
	assert.Equal(t, "bản ghi phân ca không tồn tại", env.Message)
}

func TestAssignmentRoundTrip(t *testing.T) {
	h, publisher := newTestHandler(t, newLedgerFixture())

	env := doJSON(t, h, http.MethodPost, "/assignments", map[string]any{
		"staffID": 1, "date": "02-06-2025", "shiftTemplateID": 1,
	})
	require.True(t, env.Success, env.Message)

	var created struct {
		Assignment domain.Assignment `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.Assignment.ID)
	assert.Equal(t, domain.AssignmentScheduled, created.Assignment.Status)
	assert.Len(t, publisher.published, 1)

	env = doJSON(t, h, http.MethodGet, "/assignments?start=02-06-2025&end=08-06-2025", nil)
	require.True(t, env.Success)
	var listed []*domain.Assignment
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.Assignment.ID, listed[0].ID)

	env = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/assignments/%d", created.Assignment.ID), nil)
	require.True(t, env.Success, env.Message)

	env = doJSON(t, h, http.MethodGet, "/assignments?start=02-06-2025&end=08-06-2025", nil)
	require.True(t, env.Success)
	var after []*domain.Assignment
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Empty(t, after)
}

func TestCreateAssignmentUnrequiredRoleNeedsConfirmation(t *testing.T) {
	repo := newLedgerFixture()
	h, _ := newTestHandler(t, repo)

	// ca sáng không yêu cầu quản lý, phân vào phải hỏi xác nhận
	body := map[string]any{"staffID": 2, "date": "02-06-2025", "shiftTemplateID": 1}

	env := doJSON(t, h, http.MethodPost, "/assignments", body)
	assert.False(t, env.Success)

	var data struct {
		RequiresConfirmation bool     `json:"requiresConfirmation"`
		Warnings             []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.RequiresConfirmation)
	require.NotEmpty(t, data.Warnings)
	assert.Empty(t, repo.assignments)

	// người quản lý xác nhận thì vẫn phân được, ghi chú giữ lại dấu vết
	body["confirmed"] = true
	env = doJSON(t, h, http.MethodPost, "/assignments", body)
	require.True(t, env.Success, env.Message)

	var created struct {
		Assignment domain.Assignment `json:"assignment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Contains(t, created.Assignment.Notes, "[đã xác nhận vượt cảnh báo]")
}
