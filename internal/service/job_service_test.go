package service

import (
	"context"
	"errors"
	"testing"

	"job-admin-go/internal/section"

	"github.com/stretchr/testify/assert"
)

// 校验失败的路径不依赖存储层，服务可用零值依赖构造
func TestJobServiceCreateValidation(t *testing.T) {
	svc := NewJobService(nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateJobInput{
		Title:   "高级后端工程师",
		JobType: "Government",
	})
	assert.Error(t, err, "缺少必填字段时应当报错")
	assert.True(t, errors.Is(err, ErrValidation), "应当是校验错误")
	assert.Contains(t, err.Error(), "shortDescription", "错误信息应当列出缺失字段名")
	assert.Contains(t, err.Error(), "organization")

	_, err = svc.Create(context.Background(), CreateJobInput{
		Title:            "高级后端工程师",
		ShortDescription: "负责核心服务",
		AdvtNo:           "ADV-2024-001",
		Organization:     "测试机构",
		JobType:          "Freelance",
		Sector:           "Central",
		Category:         "Engineering",
		SubCategory:      "Backend",
	})
	assert.Error(t, err, "枚举外的岗位类型应当被拒绝")
	assert.True(t, errors.Is(err, ErrValidation))
}

// 分段名在任何存储访问之前校验，未知分段名无需数据库即可拒绝
func TestJobServiceSaveSectionUnknownName(t *testing.T) {
	svc := NewJobService(nil, nil, nil)

	_, err := svc.SaveSection(context.Background(), "job-1", "notASection", map[string]any{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, section.ErrUnknownSection), "未知分段名应当映射到分段错误")
}

// 空缺岗位guard同样先于存储访问执行
func TestJobServiceSaveSectionVacancyGuard(t *testing.T) {
	svc := NewJobService(nil, nil, nil)

	_, err := svc.SaveSection(context.Background(), "job-1", "vacancies", map[string]any{
		"postName":        "",
		"totalVacancies":  0,
		"generalVacancy":  5,
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, section.ErrInvalidPayload), "缺少岗位名称与总数时应当拒绝")
}

func TestJobServiceDeleteArrayItemFieldValidation(t *testing.T) {
	svc := NewJobService(nil, nil, nil)

	_, err := svc.DeleteArrayItem(context.Background(), "job-1", "title", 0)
	assert.Error(t, err, "非数组字段应当被拒绝")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.DeleteArrayItem(context.Background(), "job-1", "files", -1)
	assert.Error(t, err, "负下标应当被拒绝")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestJobServiceAppendFilesEmptyList(t *testing.T) {
	svc := NewJobService(nil, nil, nil)

	_, err := svc.AppendFiles(context.Background(), "job-1", nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

// 新建岗位的完成标记覆盖全部分段且初值为0
func TestEmptyJobCompletion(t *testing.T) {
	completion := emptyJobCompletion()
	assert.Len(t, completion, len(section.JobSections))
	for _, name := range section.JobSections {
		flag, ok := completion[string(name)]
		assert.True(t, ok, "分段 %s 应当有初始标记", name)
		assert.Equal(t, 0, flag)
	}
}
