package handler

import (
	"context"
	"errors"

	"job-admin-go/internal/section"
	"job-admin-go/internal/service"
	"job-admin-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
)

// writeError 把服务层错误翻译为HTTP状态码并输出统一的错误响应体。
// 分段映射错误与校验错误是客户端问题，冲突映射到409让客户端重试
func writeError(ctx context.Context, c *app.RequestContext, err error) {
	status := consts.StatusInternalServerError
	message := "服务器内部错误" // 内部错误不向客户端透露细节

	switch {
	case errors.Is(err, section.ErrUnknownSection),
		errors.Is(err, section.ErrInvalidPayload),
		errors.Is(err, service.ErrValidation):
		status = consts.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = consts.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = consts.StatusConflict
		message = err.Error()
	}

	tracing.RecordHTTPError(trace.SpanFromContext(ctx), err, status)
	c.JSON(status, utils.H{"error": message})
}
