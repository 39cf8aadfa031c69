package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
)

var (
	Module = fx.Options(
		fx.Provide(
			NewLogger,
			NewSugared,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
)

func NewLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout/stderr return EINVAL on fsync in most terminals
			_ = l.Sync()
			return nil
		},
	})

	return l, nil
}

func NewSugared(l *zap.Logger) *zap.SugaredLogger {
	return l.Sugar()
}

// New builds a development logger with coloured levels when pretty is set and
// a production JSON logger otherwise. Unknown levels keep the preset default.
func New(level string, pretty bool) (*zap.Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	return cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
}
