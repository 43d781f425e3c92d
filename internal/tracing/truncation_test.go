package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("张"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))
	assert.Equal(t, "13*******78", MaskPII("13812345678"))
	assert.Equal(t, "my***************om", MaskPII("myemail@example.com"))
}

// 属性名命中敏感关键字时值必须被掩码，否则只做长度截断
func TestSafeAttributeValue(t *testing.T) {
	masked := SafeAttributeValue("student.email", "someone@example.com", DefaultMaxLength)
	assert.NotContains(t, masked, "someone", "邮箱值应当被掩码")

	long := strings.Repeat("x", 300)
	truncated := SafeAttributeValue("db.statement", long, DefaultMaxLength)
	assert.LessOrEqual(t, len([]rune(truncated)), DefaultMaxLength)
	assert.Contains(t, truncated, "...")
}

func TestTruncateStringKeepsShortValues(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3), "maxLength过小时只保留前缀")
}
