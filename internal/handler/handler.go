package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/minimart-vn/backoffice/backend/internal/config"
	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

// Repository là các thao tác dữ liệu mà handler cần.
// *repository.Repository thoả mãn interface này, test dùng bản giả lập trong bộ nhớ.
type Repository interface {
	GetStaffByID(id int64) (*domain.Staff, error)
	GetStaffByUsername(username string) (*domain.Staff, error)
	GetAllStaffs() ([]*domain.Staff, error)
	CreateStaff(staff *domain.Staff) error
	UpdateStaff(staff *domain.Staff) error
	DeleteStaff(id int64) error
	CheckEmailIfExists(email string) (bool, error)

	GetAllShiftTemplates() ([]*domain.ShiftTemplate, error)
	GetShiftTemplate(id int64) (*domain.ShiftTemplate, error)
	CountShiftTemplates() (int64, error)
	CreateShiftTemplate(st *domain.ShiftTemplate) error
	UpdateShiftTemplate(st *domain.ShiftTemplate) error
	DeleteShiftTemplate(id int64) error
	SwapShiftTemplateOrder(id int64, offset int32) error

	CreateAssignment(a *domain.Assignment) error
	GetAssignmentByID(id int64) (*domain.Assignment, error)
	GetAssignmentsInRange(start, end domain.Date) ([]*domain.Assignment, error)
	GetAssignmentsByStaff(staffID int64, start, end domain.Date) ([]*domain.Assignment, error)
	UpdateAssignment(a *domain.Assignment) error
	DeleteAssignment(id int64) error

	GetSettings() (*domain.Settings, error)
	UpdateSettings(settings *domain.Settings) error
}

// MailPublisher đẩy mail vào hàng đợi, *amqp.Channel thoả mãn interface này.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  Repository
	translator  ut.Translator
	mailChannel MailPublisher
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Repository, mailCh MailPublisher, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	vi := vi.New()
	uni := ut.New(vi, vi)
	trans, _ := uni.GetTranslator("vi")
	if err := vi_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Xác thực
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Các API dưới đây yêu cầu đăng nhập
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/staffs", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateStaff)
			r.Get("/", h.GetAllStaffs) // mọi nhân viên đều xem được danh sách để chọn người trong ca
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Get("/", h.GetStaff)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateStaff)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteStaff)
			})
		})

		r.Route("/shift-templates", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateShiftTemplate)
			r.Get("/", h.GetAllShiftTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftTemplate)
				r.Get("/", h.GetShiftTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateShiftTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteShiftTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/reorder", h.ReorderShiftTemplate)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateAssignment)
			r.Get("/", h.GetAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.assignment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/status", h.UpdateAssignmentStatus)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteAssignment)
			})
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/weeks", h.GetWeeksInMonth)
			r.Get("/staffing", h.GetStaffing)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/weekly-cap", h.GetWeeklyCap)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/weekly-cap", h.UpdateWeeklyCap)
		})
	})
}
