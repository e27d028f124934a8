package repository

import (
	"context"

	"gorm.io/gorm"

	"worktrack/backend/internal/model"
)

// SettingsRepository 引擎配置数据访问接口
type SettingsRepository interface {
	Get(ctx context.Context) (*model.EngineSettings, error)
	Update(ctx context.Context, cfg *model.EngineSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.EngineSettings, error) {
	var cfg model.EngineSettings
	err := r.db.WithContext(ctx).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *settingsRepo) Update(ctx context.Context, cfg *model.EngineSettings) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
