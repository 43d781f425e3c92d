package section

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// 类型收敛辅助函数：前端传来的是无类型JSON，数值可能以字符串形式出现，
// 缺失字段一律收敛为零值（数值→0，布尔→false，文本→""），绝不写null

// Str 将任意值收敛为字符串，缺失/nil返回空串
func Str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Num 将任意值收敛为float64，无法解析时返回0
func Num(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int 将任意值收敛为整数，小数截断
func Int(v any) int {
	return int(Num(v))
}

// Boolean 将任意值收敛为布尔，缺失返回false，兼容"true"/"1"字符串
func Boolean(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(b))
		return s == "true" || s == "1"
	default:
		return false
	}
}

// UnixTime 将任意日期表示收敛为unix秒，无法解析时返回0。
// 数值按unix秒处理，大于1e12按毫秒处理；字符串支持RFC3339与"2006-01-02"
func UnixTime(v any) int64 {
	switch d := v.(type) {
	case nil:
		return 0
	case float64:
		return normalizeEpoch(int64(d))
	case int64:
		return normalizeEpoch(d)
	case int:
		return normalizeEpoch(int64(d))
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return 0
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return normalizeEpoch(n)
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Unix()
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t.Unix()
		}
		return 0
	default:
		return 0
	}
}

// 毫秒级时间戳降为秒级
func normalizeEpoch(n int64) int64 {
	if n > 1e12 {
		return n / 1000
	}
	return n
}

// marshalSlice 字符串切片序列化为JSON列值
func marshalSlice(s []string) (datatypes.JSON, error) {
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// StrSlice 将任意值收敛为字符串切片，保持元素顺序，过滤掉非字符串项
func StrSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
