package core

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Xushengqwer/camera_service/config"
)

// ZapLogger 是对 *zap.Logger 的轻量包装，统一服务内的日志入口。
// 各层通过依赖注入持有 *ZapLogger，而不是直接持有 *zap.Logger。
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger 根据配置构建 ZapLogger。
// - encoding 支持 json / console，默认 json。
// - outputPath 为空时输出到 stdout。
func NewZapLogger(cfg config.ZapConfig) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无法解析日志级别 %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if cfg.OutputPath != "" {
		zapCfg.OutputPaths = []string{cfg.OutputPath}
	} else {
		zapCfg.OutputPaths = []string{"stdout"}
	}

	logger, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("构建 zap logger 失败: %w", err)
	}
	return &ZapLogger{logger: logger}, nil
}

// NewZapLoggerWith 用一个已存在的 *zap.Logger 包装出 ZapLogger，主要供测试使用。
func NewZapLoggerWith(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

// Logger 返回底层的 *zap.Logger，供需要原生 logger 的组件（如请求日志中间件）使用。
func (l *ZapLogger) Logger() *zap.Logger {
	return l.logger
}

func (l *ZapLogger) Debug(msg string, fields ...zap.Field) { l.logger.Debug(msg, fields...) }
func (l *ZapLogger) Info(msg string, fields ...zap.Field)  { l.logger.Info(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...zap.Field)  { l.logger.Warn(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...zap.Field) { l.logger.Error(msg, fields...) }
func (l *ZapLogger) Fatal(msg string, fields ...zap.Field) { l.logger.Fatal(msg, fields...) }
