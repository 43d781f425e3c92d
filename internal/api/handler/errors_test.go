package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"job-admin-go/internal/section"
	"job-admin-go/internal/service"

	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
)

// 服务层错误到HTTP状态码的映射是客户端契约的一部分
func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"未知分段名", section.NewUnknownSectionError("notASection"), consts.StatusBadRequest},
		{"payload不合法", section.NewInvalidPayloadError("vacancies", "缺少岗位名称"), consts.StatusBadRequest},
		{"校验错误", service.NewValidationError("create_job", "缺少必填字段"), consts.StatusBadRequest},
		{"记录不存在", service.NewNotFoundError("job-1", "get_job"), consts.StatusNotFound},
		{"唯一键冲突", service.NewConflictError("stu-1", "create_student", "邮箱已被占用"), consts.StatusConflict},
		{"包装过的校验错误", fmt.Errorf("外层: %w", service.NewValidationError("op", "细节")), consts.StatusBadRequest},
		{"未分类错误", errors.New("数据库连接中断"), consts.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ut.CreateUtRequestContext("GET", "/api/v1/jobs/job-1", nil)
			writeError(context.Background(), c, tc.err)
			assert.Equal(t, tc.wantStatus, c.Response.StatusCode(), "错误 %v 应当映射到 %d", tc.err, tc.wantStatus)
		})
	}
}

// 内部错误不向客户端透露细节
func TestWriteErrorHidesInternalDetail(t *testing.T) {
	c := ut.CreateUtRequestContext("GET", "/api/v1/jobs/job-1", nil)
	writeError(context.Background(), c, errors.New("dsn: user:password@tcp(db:3306)"))
	assert.NotContains(t, string(c.Response.Body()), "password", "响应体不应包含内部错误细节")
}

func TestQueryIntDefaults(t *testing.T) {
	c := ut.CreateUtRequestContext("GET", "/api/v1/jobs?page=3&page_size=abc", nil)
	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 20, queryInt(c, "page_size", 20), "非法值应当回落到默认值")
	assert.Equal(t, 1, queryInt(c, "missing", 1), "缺失参数应当回落到默认值")
}
