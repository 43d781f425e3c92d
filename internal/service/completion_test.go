package service

import (
	"testing"

	"job-admin-go/internal/section"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestBuildCompletionReportPercentage(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	persisted := datatypes.JSONMap{"a": float64(1), "c": float64(1)}

	report := BuildCompletionReport(persisted, keys)
	assert.Equal(t, 2, report.Completed)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 50, report.Percentage)
	// 未保存过的分段归一化为0而非缺失
	assert.Equal(t, 0, report.Flags["b"])
	assert.Equal(t, 0, report.Flags["d"])
}

func TestBuildCompletionReportRounding(t *testing.T) {
	// 13个学员分段里完成1个 → round(100/13) = 8
	keys := make([]string, 0, len(section.StudentSections))
	for _, s := range section.StudentSections {
		keys = append(keys, section.StudentCompletionKeys[s])
	}
	persisted := datatypes.JSONMap{"studentAddressData": float64(1)}

	report := BuildCompletionReport(persisted, keys)
	assert.Equal(t, 13, report.Total)
	assert.Equal(t, 8, report.Percentage)
}

func TestBuildCompletionReportZeroSections(t *testing.T) {
	// 固定schema下不应出现，但绝不能除零
	report := BuildCompletionReport(nil, nil)
	assert.Equal(t, 0, report.Percentage)
	assert.Equal(t, 0, report.Total)
}

func TestBuildCompletionReportNilPersisted(t *testing.T) {
	report := BuildCompletionReport(nil, []string{"a", "b"})
	assert.Equal(t, 0, report.Completed)
	assert.Equal(t, 0, report.Percentage)
}
