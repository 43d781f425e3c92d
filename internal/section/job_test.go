package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMapJobUnknownSection(t *testing.T) {
	// 未知分段名必须返回UnknownSectionError，不产生任何更新
	updates, err := MapJob("not_a_real_section", map[string]any{})
	assert.Nil(t, updates)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestMapJobBasicDetails(t *testing.T) {
	updates, err := MapJob("basicDetails", map[string]any{
		"title":        "Clerk",
		"advtNo":       "1/2024",
		"organization": "Dept",
		"jobType":      "Permanent",
	})
	require.NoError(t, err)

	assert.Equal(t, "Clerk", updates["title"])
	assert.Equal(t, "1/2024", updates["advt_no"])
	// 缺失的文本字段收敛为空串而非null
	assert.Equal(t, "", updates["short_description"])
	assert.Equal(t, "", updates["category"])
}

func TestMapJobFeesSingleCategory(t *testing.T) {
	// 按报考类别只更新单列，其余费用列不出现在更新集合中
	updates, err := MapJob("fees", map[string]any{"category": "General", "fee": float64(100)})
	require.NoError(t, err)

	assert.Equal(t, float64(100), updates["fee_general"])
	assert.Len(t, updates, 1)
}

func TestMapJobFeesUnknownCategory(t *testing.T) {
	updates, err := MapJob("fees", map[string]any{"category": "VIP", "fee": float64(100)})
	assert.Nil(t, updates)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestMapJobVacanciesGuard(t *testing.T) {
	// 空岗位名被拒绝
	_, err := MapJob("vacancies", map[string]any{"totalVacancies": float64(10)})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	// 总数为0被拒绝
	_, err = MapJob("vacancies", map[string]any{"postName": "Clerk"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	// 合法输入，缺失配额收敛为0
	updates, err := MapJob("vacancies", map[string]any{
		"postName":       "Clerk",
		"totalVacancies": float64(10),
		"general":        float64(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "Clerk", updates["post_name"])
	assert.Equal(t, 10, updates["total_vacancies"])
	assert.Equal(t, 4, updates["vacancy_general"])
	assert.Equal(t, 0, updates["vacancy_obc"])
}

func TestMapJobDatesLookupTable(t *testing.T) {
	updates, err := MapJob("dates", map[string]any{
		"dates": []any{
			map[string]any{"label": "applicationStartDate", "date": "2024-06-01"},
			map[string]any{"label": "examDate", "date": float64(1717200000)},
			map[string]any{"label": "notARealLabel", "date": "2024-06-01"}, // 表外标签静默丢弃
		},
	})
	require.NoError(t, err)

	assert.Contains(t, updates, "application_start_date")
	assert.Equal(t, int64(1717200000), updates["exam_date"])
	assert.Len(t, updates, 2, "表外标签不应产生更新")
}

func TestMapJobDatesMillisNormalized(t *testing.T) {
	// 毫秒级时间戳降为秒级
	updates, err := MapJob("dates", map[string]any{
		"dates": []any{
			map[string]any{"label": "resultDate", "date": float64(1717200000000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1717200000), updates["result_date"])
}

func TestMapJobLinksCollapse(t *testing.T) {
	// {type,label,url}列表折叠为label→URL映射，重复label后写覆盖前写，type丢弃
	updates, err := MapJob("links", map[string]any{
		"links": []any{
			map[string]any{"type": "official", "label": "官网", "url": "https://a.example"},
			map[string]any{"type": "mirror", "label": "官网", "url": "https://b.example"},
			map[string]any{"type": "apply", "label": "报名", "url": "https://c.example"},
		},
	})
	require.NoError(t, err)

	links, ok := updates["links"].(datatypes.JSONMap)
	require.True(t, ok)
	assert.Equal(t, "https://b.example", links["官网"])
	assert.Equal(t, "https://c.example", links["报名"])
	assert.Len(t, links, 2)
}

func TestMapJobPaymentOptionsDefaults(t *testing.T) {
	// 缺失布尔字段收敛为false
	updates, err := MapJob("paymentOptions", map[string]any{"payOnline": true})
	require.NoError(t, err)
	assert.Equal(t, true, updates["pay_online"])
	assert.Equal(t, false, updates["pay_offline"])
	assert.Equal(t, false, updates["pay_upi"])
}

func TestMapJobSelectionKeepsOrder(t *testing.T) {
	updates, err := MapJob("selection", map[string]any{
		"steps": []any{"笔试", "面试", "体检"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["笔试","面试","体检"]`, string(updates["selection_steps"].(datatypes.JSON)))
}

func TestJobSectionsCoverFieldTables(t *testing.T) {
	// 枚举全集必须包含声明式字段表覆盖的所有分段
	known := make(map[JobSection]bool, len(JobSections))
	for _, s := range JobSections {
		known[s] = true
	}
	for s := range jobFieldTables {
		assert.True(t, known[s], "字段表中的分段 %s 未登记在全集中", s)
	}
	assert.Len(t, JobSections, 11)
}
