package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"teamforge/internal/pkg/config"
	"teamforge/internal/service"
)

const levelSyncTimeout = 10 * time.Minute

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	levelSvc      service.LevelService
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(levelSvc service.LevelService, logger *zap.Logger) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		levelSvc:      levelSvc,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 注册任务并启动调度器
// cron 表达式格式: 秒 分 时 日 月 周, 为空时不注册等级同步任务
func (s *Scheduler) Start(cfg *config.SchedulerConfig) error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	if cfg.LevelSyncCron == "" {
		log.Warn("未配置scheduler.level_sync_cron, 跳过等级同步任务")
	} else {
		entryID, err := s.cron.AddFunc(cfg.LevelSyncCron, func() {
			if _, err := s.TriggerLevelSync(); err != nil {
				log.Errorf("等级同步任务执行失败: %v", err)
			}
		})
		if err != nil {
			log.Errorf("注册等级同步任务失败: %s: %v", cfg.LevelSyncCron, err)
			return err
		}
		s.cronSchedules["level_sync"] = entryID
		log.Infof("等级同步任务已注册: %s entry_id=%d", cfg.LevelSyncCron, entryID)
	}

	// 启动 cron
	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// Entries 已注册的任务
func (s *Scheduler) Entries() map[string]cron.EntryID {
	return s.cronSchedules
}

// TriggerLevelSync 手动触发等级同步
func (s *Scheduler) TriggerLevelSync() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), levelSyncTimeout)
	defer cancel()

	start := time.Now()
	fixed, err := s.levelSvc.Reconcile(ctx)
	if err != nil {
		return fixed, err
	}
	s.logger.Info("等级同步完成",
		zap.Int("fixed", fixed),
		zap.Duration("cost", time.Since(start)))
	return fixed, nil
}
