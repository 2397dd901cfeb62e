package division

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=division_repo.go -destination=mock/division_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context, name string) ([]Division, error)
	FindByID(ctx context.Context, id string) (*Division, error)
	FindByName(ctx context.Context, name string) (*Division, error)
	Create(ctx context.Context, div *Division) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context, name string) ([]Division, error) {
	var divs []Division
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if name != "" {
		// substring match case-insensitive seperti backend aslinya
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}
	err := q.Find(&divs).Error
	return divs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Division, error) {
	var div Division
	err := r.db.WithContext(ctx).First(&div, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &div, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Division, error) {
	var div Division
	err := r.db.WithContext(ctx).First(&div, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &div, nil
}

func (r *repository) Create(ctx context.Context, div *Division) error {
	return r.db.WithContext(ctx).Create(div).Error
}
