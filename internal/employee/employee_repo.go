package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter, offset, limit int) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	GetDivisionName(ctx context.Context, divisionID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func applyFilter(q *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Name != "" {
		// substring match case-insensitive pada nama
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.DivisionID != "" {
		q = q.Where("division_id = ?", filter.DivisionID)
	}
	return q
}

// FindAll mengembalikan satu halaman beserta total baris setelah filter.
func (r *repository) FindAll(ctx context.Context, filter ListFilter, offset, limit int) ([]Employee, int64, error) {
	var total int64
	countQ := applyFilter(r.db.WithContext(ctx).Model(&Employee{}), filter)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	listQ := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Division").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit)
	if err := listQ.Find(&empls).Error; err != nil {
		return nil, 0, err
	}

	return empls, total, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Division").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// GetDivisionName mengembalikan "" jika divisinya tidak ada.
func (r *repository) GetDivisionName(ctx context.Context, divisionID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("divisions").
		Select("name").
		Where("id = ?", divisionID).
		Where("deleted_at IS NULL").
		Scan(&name).Error
	return name, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	// id tidak ada (atau sudah dihapus) harus terlihat sebagai NotFound
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
