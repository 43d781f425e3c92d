package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCtxFallsBackToGlobalLogger(t *testing.T) {
	// 未注入日志记录器的上下文必须回退到全局Logger，
	// 否则zerolog.Ctx返回disabled logger，服务层日志被静默丢弃
	var buf bytes.Buffer
	orig := Logger
	Logger = zerolog.New(&buf)
	defer func() { Logger = orig }()

	Ctx(context.Background()).Warn().Msg("降级为无锁保存")
	assert.Contains(t, buf.String(), "降级为无锁保存")
}

func TestCtxPrefersContextLogger(t *testing.T) {
	var globalBuf, ctxBuf bytes.Buffer
	orig := Logger
	Logger = zerolog.New(&globalBuf)
	defer func() { Logger = orig }()

	ctxLogger := zerolog.New(&ctxBuf)
	ctx := ctxLogger.WithContext(context.Background())

	Ctx(ctx).Warn().Msg("走上下文记录器")
	assert.Contains(t, ctxBuf.String(), "走上下文记录器")
	assert.Empty(t, globalBuf.String())
}

func TestInitAppliesLevelAndExtraWriter(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger
	defer func() {
		Logger = orig
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}()

	Init(Config{Level: "warn", Format: "json"}, &buf)

	Logger.Info().Msg("info级别不应输出")
	Logger.Warn().Msg("warn级别应输出")

	assert.NotContains(t, buf.String(), "info级别不应输出")
	assert.Contains(t, buf.String(), "warn级别应输出")
}
