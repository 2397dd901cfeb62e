package division

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const divisionsCacheKey = "divisions:all"

//go:generate mockgen -source=division_service.go -destination=mock/division_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, name string) ([]DivisionResponse, error)
	GetByID(ctx context.Context, id string) (DivisionResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("division.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("division.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context, name string) ([]DivisionResponse, error) {
	s.logger.Debug("get all divisions requested", zap.String("name", name))

	// Query berfilter langsung ke DB; hanya daftar penuh yang dicache
	if name != "" {
		divs, err := s.repo.FindAll(ctx, name)
		if err != nil {
			s.logger.Error("get divisions failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}
		return mapToListResponse(divs), nil
	}

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, divisionsCacheKey).Result(); err == nil {
			var resp []DivisionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight agar cache stampede tidak membanjiri DB
	v, err, _ := s.sf.Do(divisionsCacheKey, func() (interface{}, error) {
		divs, err := s.repo.FindAll(ctx, "")
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(divs)

		// 3. Simpan ke Redis (data master, TTL 30 menit cukup)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, divisionsCacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("get divisions failed", zap.Error(err))
		return nil, err
	}

	return v.([]DivisionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DivisionResponse, error) {
	div, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get division by id failed", zap.String("division_id", id), zap.Error(err))
		return DivisionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*div), nil
}

func mapToResponse(div Division) DivisionResponse {
	return DivisionResponse{
		ID:   div.ID.String(),
		Name: div.Name,
	}
}

func mapToListResponse(divs []Division) []DivisionResponse {
	res := make([]DivisionResponse, len(divs))
	for i, d := range divs {
		res[i] = mapToResponse(d)
	}
	return res
}
