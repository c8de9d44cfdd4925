// Package logger 基于zap构建结构化日志
//
// 配置项对应config.LogConfig：
//   - level: debug | info | warn | error
//   - format: console（开发环境，彩色可读） | json（生产环境，便于采集）
//   - output: stdout | stderr | 文件路径
//   - enable_caller: 是否输出调用位置
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建zap.Logger
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(orDefault(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别: %w", err)
	}

	var zc zap.Config
	switch orDefault(opts.Format, "console") {
	case "json":
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("不支持的日志格式: %s", opts.Format)
	}

	output := orDefault(opts.Output, "stdout")
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableCaller = !opts.EnableCaller
	// 开发配置默认在warn级别打印堆栈，噪音太大
	zc.DisableStacktrace = true

	return zc.Build()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
