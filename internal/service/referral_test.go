package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referralCodePattern = regexp.MustCompile(`^JP[A-Z0-9]{6}$`)

func TestReferralGeneratorFormat(t *testing.T) {
	gen := NewReferralGenerator()
	code, err := gen.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Regexp(t, referralCodePattern, code)
}

func TestReferralGeneratorUniqueness(t *testing.T) {
	// 模拟并发生成：N次生成出N个互不相同的码
	gen := NewReferralGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := gen.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
			return seen[code], nil
		})
		require.NoError(t, err)
		assert.False(t, seen[code], "生成了重复的推荐码: %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, 200)
}

func TestReferralGeneratorRetriesOnCollision(t *testing.T) {
	// 前3次碰撞后第4次成功
	gen := NewReferralGenerator()
	calls := 0
	code, err := gen.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls <= 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Regexp(t, referralCodePattern, code)
}

func TestReferralGeneratorExhaustsRetries(t *testing.T) {
	// 所有候选都碰撞时，10次后返回终止错误而非无界递归
	gen := NewReferralGenerator()
	calls := 0
	_, err := gen.Generate(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrReferralExhausted)
	assert.Equal(t, referralMaxAttempts, calls)
}
