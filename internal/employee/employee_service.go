package employee

import (
	"context"
	"database/sql"
	"strings"

	employeeerrors "go-employee/internal/employee/errors"
	"go-employee/internal/eventbus"
	"go-employee/internal/events"
	"go-employee/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter, page, limit int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, bus *eventbus.Bus, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		bus:    bus,
		logger: l,
	}
}

// publishChange menyiarkan mutasi pada koleksi employees. Dipanggil hanya
// setelah commit sukses; satu mutasi = tepat satu publish.
func (s *service) publishChange(eventType, employeeID, requestID string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.EmployeesKey, events.NewChangeEvent(eventType, employeeID, requestID))
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
		zap.String("division", req.Division),
	)

	if err := validateCreate(&req); err != nil {
		s.logger.Warn("create employee invalid input", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	divisionID, err := uuid.Parse(req.Division)
	if err != nil {
		s.logger.Warn("create employee division id unparseable",
			zap.String("division", req.Division),
		)
		return EmployeeResponse{}, employeeerrors.ErrDivisionNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	divisionName, err := qtx.GetDivisionName(ctx, divisionID.String())
	if err != nil {
		s.logger.Error("create employee division lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if divisionName == "" {
		s.logger.Warn("create employee division not found",
			zap.String("division_id", divisionID.String()),
		)
		return EmployeeResponse{}, employeeerrors.ErrDivisionNotFound
	}

	empl := &Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Phone:      req.Phone,
		Position:   req.Position,
		Image:      req.Image,
		DivisionID: divisionID,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.publishChange("created", empl.ID.String(), rid)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	resp := mapToResponse(*empl)
	resp.Division = &EmployeeDivisionResponse{ID: divisionID.String(), Name: divisionName}
	return resp, nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter ListFilter,
	page, limit int,
) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get all employees requested",
		zap.String("name", filter.Name),
		zap.String("division_id", filter.DivisionID),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	empls, total, err := s.repo.FindAll(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(empls), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	if err := validateUpdate(&req); err != nil {
		s.logger.Warn("update employee invalid input", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Division != nil {
		divisionID, err := uuid.Parse(*req.Division)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrDivisionNotFound
		}
		divisionName, err := qtx.GetDivisionName(ctx, divisionID.String())
		if err != nil {
			s.logger.Error("update employee division lookup failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if divisionName == "" {
			s.logger.Warn("update employee division not found",
				zap.String("division_id", divisionID.String()),
			)
			return EmployeeResponse{}, employeeerrors.ErrDivisionNotFound
		}
		empl.DivisionID = divisionID
		empl.Division = nil // biarkan preload berikutnya yang mengisi ulang
	}
	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Phone != nil {
		empl.Phone = *req.Phone
	}
	if req.Position != nil {
		empl.Position = *req.Position
	}
	if req.Image != nil {
		empl.Image = *req.Image
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.publishChange("updated", id, rid)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.publishChange("deleted", id, rid)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// validateCreate menolak field wajib yang kosong setelah trimming, sebelum
// menyentuh database. Aturannya sama dengan validasi backend, tidak lebih ketat.
func validateCreate(req *CreateEmployeeRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Division = strings.TrimSpace(req.Division)
	req.Position = strings.TrimSpace(req.Position)

	if req.Name == "" || req.Phone == "" || req.Division == "" || req.Position == "" {
		return employeeerrors.ErrMissingRequiredFields
	}
	return nil
}

func validateUpdate(req *UpdateEmployeeRequest) error {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	req.Name = trim(req.Name)
	req.Phone = trim(req.Phone)
	req.Division = trim(req.Division)
	req.Position = trim(req.Position)

	// Field yang dikirim tidak boleh dikosongkan, kecuali image
	for _, p := range []*string{req.Name, req.Phone, req.Division, req.Position} {
		if p != nil && *p == "" {
			return employeeerrors.ErrMissingRequiredFields
		}
	}
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       empl.ID.String(),
		Image:    empl.Image,
		Name:     empl.Name,
		Phone:    empl.Phone,
		Position: empl.Position,
	}
	if empl.Division != nil {
		resp.Division = &EmployeeDivisionResponse{
			ID:   empl.Division.ID.String(),
			Name: empl.Division.Name,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
