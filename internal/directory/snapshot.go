package directory

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"go-employee/internal/eventbus"
	"go-employee/internal/events"
	"go-employee/internal/shared/apperror"
	"go-employee/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot adalah backend lokal untuk mode offline/demo: salinan
// denormalisasi data karyawan/divisi dengan id sintetis, semantik
// filter/paginasi yang identik dengan backend remote, dan publish bus yang
// sama pada tiap mutasi. Sumber kebenarannya adalah memori proses ini,
// dengan persistence JSON opsional.
type Snapshot struct {
	mu        sync.RWMutex
	path      string // "" = in-memory saja
	divisions []Division
	employees []Employee
	bus       *eventbus.Bus
	logger    *zap.Logger
}

type SnapshotConfig struct {
	// Path file JSON untuk persistence; kosongkan untuk in-memory saja.
	Path string
}

type snapshotFile struct {
	Divisions []Division `json:"divisions"`
	Employees []Employee `json:"employees"`
}

func NewSnapshot(cfg SnapshotConfig, bus *eventbus.Bus, logger ...*zap.Logger) (*Snapshot, error) {
	l := zap.L().Named("directory.snapshot")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.snapshot")
	}

	s := &Snapshot{
		path:   cfg.Path,
		bus:    bus,
		logger: l,
	}

	if cfg.Path != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

var _ Directory = (*Snapshot)(nil)

// Seed mengganti seluruh isi snapshot. Dipakai untuk data demo dan test.
func (s *Snapshot) Seed(divisions []Division, employees []Employee) {
	s.mu.Lock()
	s.divisions = append([]Division(nil), divisions...)
	s.employees = append([]Employee(nil), employees...)
	s.mu.Unlock()
	s.persist()
}

// SeedDemo mengisi snapshot dengan data demo bawaan.
func (s *Snapshot) SeedDemo() {
	s.Seed(DemoDivisions(), DemoEmployees())
}

func (s *Snapshot) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	s.mu.Lock()
	s.divisions = file.Divisions
	s.employees = file.Employees
	s.mu.Unlock()
	return nil
}

func (s *Snapshot) persist() {
	if s.path == "" {
		return
	}

	s.mu.RLock()
	file := snapshotFile{Divisions: s.divisions, Employees: s.employees}
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		s.logger.Error("marshal snapshot failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.logger.Error("write snapshot failed", zap.String("path", s.path), zap.Error(err))
	}
}

func (s *Snapshot) publish(ctx context.Context, eventType, resourceID string) {
	if s.bus == nil {
		return
	}
	rid := contextutil.GetRequestID(ctx)
	s.bus.Publish(events.EmployeesKey, events.NewChangeEvent(eventType, resourceID, rid))
}

func (s *Snapshot) ListEmployees(ctx context.Context, filter Filter, page PageRequest) (PageResult, error) {
	page = page.normalize()

	s.mu.RLock()
	var matched []Employee
	for _, e := range s.employees {
		if matchesFilter(e, filter) {
			matched = append(matched, e)
		}
	}
	s.mu.RUnlock()

	total := int64(len(matched))

	start := (page.Page - 1) * page.Limit
	end := start + page.Limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	items := append([]Employee(nil), matched[start:end]...)
	if items == nil {
		items = []Employee{}
	}

	from, to := boundsFor(page.Page, page.Limit, len(items))
	return PageResult{
		Items:       items,
		CurrentPage: page.Page,
		PerPage:     page.Limit,
		Total:       total,
		LastPage:    lastPageFor(total, page.Limit),
		From:        from,
		To:          to,
	}, nil
}

func (s *Snapshot) ListDivisions(ctx context.Context, name string) ([]Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	divs := make([]Division, 0, len(s.divisions))
	for _, d := range s.divisions {
		if name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			continue
		}
		divs = append(divs, d)
	}
	return divs, nil
}

func (s *Snapshot) findDivision(id string) (Division, bool) {
	for _, d := range s.divisions {
		if d.ID == id {
			return d, true
		}
	}
	return Division{}, false
}

func (s *Snapshot) CreateEmployee(ctx context.Context, input EmployeeInput) (string, error) {
	if err := validateInput(&input); err != nil {
		return "", err
	}

	s.mu.Lock()
	div, ok := s.findDivision(input.Division)
	if !ok {
		s.mu.Unlock()
		return "", apperror.New(apperror.CodeNotFound, "Divisi tidak ditemukan", 404)
	}

	empl := Employee{
		ID:       uuid.NewString(),
		Image:    input.Image,
		Name:     input.Name,
		Phone:    input.Phone,
		Division: div,
		Position: input.Position,
	}
	s.employees = append(s.employees, empl)
	s.mu.Unlock()

	s.persist()
	s.publish(ctx, "created", empl.ID)
	return empl.ID, nil
}

func (s *Snapshot) UpdateEmployee(ctx context.Context, id string, update EmployeeUpdate) error {
	s.mu.Lock()

	idx := -1
	for i, e := range s.employees {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.New(apperror.CodeNotFound, "Karyawan tidak ditemukan", 404)
	}

	empl := s.employees[idx]

	if update.Division != nil {
		div, ok := s.findDivision(strings.TrimSpace(*update.Division))
		if !ok {
			s.mu.Unlock()
			return apperror.New(apperror.CodeNotFound, "Divisi tidak ditemukan", 404)
		}
		empl.Division = div
	}
	if err := applyText(&empl.Name, update.Name); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := applyText(&empl.Phone, update.Phone); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := applyText(&empl.Position, update.Position); err != nil {
		s.mu.Unlock()
		return err
	}
	if update.Image != nil {
		empl.Image = *update.Image
	}

	s.employees[idx] = empl
	s.mu.Unlock()

	s.persist()
	s.publish(ctx, "updated", id)
	return nil
}

// applyText mengganti *dst jika src diset; field teks wajib tidak boleh
// dikosongkan lewat update parsial.
func applyText(dst *string, src *string) error {
	if src == nil {
		return nil
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		return apperror.ErrInvalidInput
	}
	*dst = v
	return nil
}

func (s *Snapshot) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()

	idx := -1
	for i, e := range s.employees {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.New(apperror.CodeNotFound, "Karyawan tidak ditemukan", 404)
	}

	s.employees = append(s.employees[:idx], s.employees[idx+1:]...)
	s.mu.Unlock()

	s.persist()
	s.publish(ctx, "deleted", id)
	return nil
}
