package service

import (
	"math"

	"gorm.io/datatypes"
)

// CompletionReport 完成度追踪器的查询结果：完整标记映射 + 派生百分比
type CompletionReport struct {
	Flags      map[string]int `json:"flags"`
	Completed  int            `json:"completed"`
	Total      int            `json:"total"`
	Percentage int            `json:"percentage"`
}

// BuildCompletionReport 按固定的key集合归一化持久化标记并折算百分比。
// 分母是固定的key总数而非已尝试的分段数；total为0时返回0而非除零
func BuildCompletionReport(persisted datatypes.JSONMap, keys []string) CompletionReport {
	report := CompletionReport{
		Flags: make(map[string]int, len(keys)),
		Total: len(keys),
	}

	for _, key := range keys {
		flag := 0
		if persisted != nil {
			if flagSet(persisted[key]) {
				flag = 1
			}
		}
		report.Flags[key] = flag
		report.Completed += flag
	}

	if report.Total > 0 {
		report.Percentage = int(math.Round(100 * float64(report.Completed) / float64(report.Total)))
	}
	return report
}

// flagSet JSON反序列化后数字可能是float64或int，非零即视为已完成
func flagSet(v any) bool {
	switch n := v.(type) {
	case float64:
		return n != 0
	case int:
		return n != 0
	case int64:
		return n != 0
	case bool:
		return n
	default:
		return false
	}
}
