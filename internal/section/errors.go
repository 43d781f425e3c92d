package section

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnknownSection = errors.New("未知的分段名称")
	ErrInvalidPayload = errors.New("分段数据校验失败")
)

// SectionError 包含分段名与细节的自定义错误
type SectionError struct {
	Section string
	BaseErr error
	Detail  string
}

func (e *SectionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (分段:%s): %s", e.BaseErr, e.Section, e.Detail)
	}
	return fmt.Sprintf("%s (分段:%s)", e.BaseErr, e.Section)
}

func (e *SectionError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *SectionError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewUnknownSectionError(name string) error {
	return &SectionError{
		Section: name,
		BaseErr: ErrUnknownSection,
	}
}

func NewInvalidPayloadError(name, detail string) error {
	return &SectionError{
		Section: name,
		BaseErr: ErrInvalidPayload,
		Detail:  detail,
	}
}
