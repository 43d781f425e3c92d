package service

import (
	"context"
	"errors"
	"testing"

	"job-admin-go/internal/section"

	"github.com/stretchr/testify/assert"
)

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentInput{
		FirstName: "张",
		Email:     "zhang@example.com",
	})
	assert.Error(t, err, "缺少必填字段时应当报错")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "mobile", "错误信息应当列出缺失字段名")
	assert.Contains(t, err.Error(), "password")
	assert.Contains(t, err.Error(), "jobType")

	_, err = svc.Create(context.Background(), CreateStudentInput{
		FirstName: "张",
		Email:     "zhang@example.com",
		Mobile:    "13800000000",
		Password:  "secret123",
		JobType:   "NotAJobType",
	})
	assert.Error(t, err, "枚举外的岗位类型应当被拒绝")
	assert.True(t, errors.Is(err, ErrValidation))
}

// 未知分段名在任何存储访问之前被拒绝
func TestStudentServiceSaveSectionUnknownName(t *testing.T) {
	svc := NewStudentService(nil, nil, nil)

	_, err := svc.SaveSection(context.Background(), "stu-1", "favoriteColor", map[string]any{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, section.ErrUnknownSection))
}

// 新注册学员的资料完成标记覆盖全部13个固定key且初值为0
func TestEmptyStudentCompletion(t *testing.T) {
	completion := emptyStudentCompletion()
	assert.Len(t, completion, len(section.StudentSections))
	for _, name := range section.StudentSections {
		key := section.StudentCompletionKeys[name]
		flag, ok := completion[key]
		assert.True(t, ok, "分段 %s 的完成key %s 应当存在", name, key)
		assert.Equal(t, 0, flag)
	}
}
