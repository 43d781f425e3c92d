package service

import (
	"errors"
	"fmt"
)

// 定义基础错误类型，HTTP层据此映射状态码(400/404/409/500)
var (
	ErrValidation        = errors.New("请求数据校验失败")
	ErrNotFound          = errors.New("实体不存在")
	ErrConflict          = errors.New("唯一性冲突")
	ErrReferralExhausted = errors.New("推荐码生成重试次数耗尽")
)

// EntityError 包含实体与操作上下文的自定义错误
type EntityError struct {
	EntityID string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *EntityError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, ID:%s): %s", e.BaseErr, e.Op, e.EntityID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, ID:%s)", e.BaseErr, e.Op, e.EntityID)
}

func (e *EntityError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *EntityError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewValidationError(op, detail string) error {
	return &EntityError{
		Op:      op,
		BaseErr: ErrValidation,
		Detail:  detail,
	}
}

func NewNotFoundError(entityID, op string) error {
	return &EntityError{
		EntityID: entityID,
		Op:       op,
		BaseErr:  ErrNotFound,
	}
}

func NewConflictError(entityID, op, detail string) error {
	return &EntityError{
		EntityID: entityID,
		Op:       op,
		BaseErr:  ErrConflict,
		Detail:   detail,
	}
}
