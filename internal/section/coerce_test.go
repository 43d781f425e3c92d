package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumCoercion(t *testing.T) {
	assert.Equal(t, float64(0), Num(nil))
	assert.Equal(t, float64(100), Num(float64(100)))
	assert.Equal(t, float64(99.5), Num("99.5"))
	assert.Equal(t, float64(0), Num("not-a-number"))
}

func TestBooleanCoercion(t *testing.T) {
	assert.False(t, Boolean(nil))
	assert.True(t, Boolean(true))
	assert.True(t, Boolean("true"))
	assert.True(t, Boolean("1"))
	assert.True(t, Boolean(float64(1)))
	assert.False(t, Boolean("no"))
}

func TestUnixTimeFormats(t *testing.T) {
	// 数值按unix秒，毫秒级自动降为秒级
	assert.Equal(t, int64(1717200000), UnixTime(float64(1717200000)))
	assert.Equal(t, int64(1717200000), UnixTime(float64(1717200000000)))
	// 字符串支持日期与RFC3339
	assert.Equal(t, int64(1704067200), UnixTime("2024-01-01"))
	assert.Equal(t, int64(1704067200), UnixTime("2024-01-01T00:00:00Z"))
	// 解析失败返回0
	assert.Equal(t, int64(0), UnixTime("someday"))
	assert.Equal(t, int64(0), UnixTime(nil))
}

func TestStrSliceFiltersNonStrings(t *testing.T) {
	out := StrSlice([]any{"a", float64(1), "b"})
	assert.Equal(t, []string{"a", "b"}, out)
	assert.Equal(t, []string{}, StrSlice("not-a-list"))
}
