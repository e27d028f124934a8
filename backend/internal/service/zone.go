package service

import (
	"time"

	"go.uber.org/zap"

	"worktrack/backend/config"
	"worktrack/backend/internal/interval"
	"worktrack/backend/internal/model"
)

// zoneResolver 时区解析器
// 优先级：客户端提示 > 引擎配置的时区 > 服务端默认时区。
// 非法时区静默回退并记日志，休息扣除是尽力而为，不允许它挡住打卡
type zoneResolver struct {
	defaultLoc *time.Location
	logger     *zap.Logger
}

func newZoneResolver(cfg *config.Config, logger *zap.Logger) *zoneResolver {
	loc, err := time.LoadLocation(cfg.Engine.DefaultTimezone)
	if err != nil {
		// 配置加载阶段已校验过；兜底到 UTC 以防万一
		loc = time.UTC
	}
	return &zoneResolver{defaultLoc: loc, logger: logger}
}

// resolve 解析生效时区
func (z *zoneResolver) resolve(clientHint, configured string) *time.Location {
	if clientHint != "" {
		loc, fellBack := interval.ResolveLocation(clientHint, nil)
		if !fellBack {
			return loc
		}
		z.logger.Warn("客户端时区提示非法，回退到配置时区", zap.String("hint", clientHint))
	}

	loc, fellBack := interval.ResolveLocation(configured, z.defaultLoc)
	if fellBack && configured != "" {
		z.logger.Warn("配置的时区非法，回退到默认时区",
			zap.String("configured", configured),
			zap.String("fallback", z.defaultLoc.String()),
		)
	}
	return loc
}

// breakWindow 由引擎配置和客户端时区提示构造休息时段；未配置时返回 nil
func (z *zoneResolver) breakWindow(s *model.EngineSettings, clientHint string) *interval.BreakWindow {
	if s == nil || !s.HasBreakWindow() {
		return nil
	}
	return &interval.BreakWindow{
		Start: s.BreakStart,
		End:   s.BreakEnd,
		Loc:   z.resolve(clientHint, s.Timezone),
	}
}
