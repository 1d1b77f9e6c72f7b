package service

import (
	"context"

	"go.uber.org/zap"

	"teamforge/internal/core/leveling"
	"teamforge/internal/model"
	"teamforge/internal/pkg/logger"
	"teamforge/internal/pkg/metrics"
	"teamforge/internal/repository"
)

const reconcileBatchSize = 200

type LevelService interface {
	// Catalog 称号表
	Catalog() ([]leveling.Badge, error)
	// Reconcile 按积分修正等级与段位, 返回修正条数
	Reconcile(ctx context.Context) (int, error)
}

type levelService struct {
	profileRepo repository.ProfileRepository
}

func NewLevelService(profileRepo repository.ProfileRepository) LevelService {
	return &levelService{profileRepo: profileRepo}
}

func (s *levelService) Catalog() ([]leveling.Badge, error) {
	return leveling.Catalog()
}

func (s *levelService) Reconcile(ctx context.Context) (int, error) {
	fixed := 0
	err := s.profileRepo.FindInBatches(reconcileBatchSize, func(profiles []*model.Profile) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, p := range profiles {
			want := leveling.Compute(p.Points)
			if p.Level == want.Level && p.Position == want.Position {
				continue
			}
			if err := s.profileRepo.UpdateLevel(p.Email, want.Level, want.Position); err != nil {
				return err
			}
			logger.Debug("修正用户等级",
				zap.String("email", p.Email),
				zap.Int("points", p.Points),
				zap.Int("from_level", p.Level),
				zap.Int("to_level", want.Level))
			fixed++
		}
		return nil
	})
	if err != nil {
		return fixed, err
	}

	metrics.LevelSyncFixed(fixed)
	return fixed, nil
}
