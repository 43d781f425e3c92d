package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"job-admin-go/internal/constants"
)

// 推荐码字符表：36个符号，6位码约22亿种组合，碰撞概率可忽略但重试仍需存在
const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// 最大重试次数：有界循环替代无界递归
const referralMaxAttempts = 10

var (
	referralRnd   = rand.New(rand.NewSource(rand.Int63()))
	referralMutex sync.Mutex
)

// ReferralGenerator 为新学员生成全局唯一的短推荐码
type ReferralGenerator struct {
	maxAttempts int
}

// NewReferralGenerator 创建推荐码生成器
func NewReferralGenerator() *ReferralGenerator {
	return &ReferralGenerator{maxAttempts: referralMaxAttempts}
}

// Generate 生成一个未被占用的推荐码。taken回调报告候选码是否已被使用，
// 连续maxAttempts次碰撞后返回ErrReferralExhausted
func (g *ReferralGenerator) Generate(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code := randomReferralCode()
		exists, err := taken(ctx, code)
		if err != nil {
			return "", fmt.Errorf("推荐码查重失败: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w (尝试%d次)", ErrReferralExhausted, g.maxAttempts)
}

// randomReferralCode 固定前缀 + 6位[A-Z0-9]均匀随机
func randomReferralCode() string {
	referralMutex.Lock()
	defer referralMutex.Unlock()

	buf := make([]byte, constants.ReferralCodeLength)
	for i := range buf {
		buf[i] = referralAlphabet[referralRnd.Intn(len(referralAlphabet))]
	}
	return constants.ReferralCodePrefix + string(buf)
}
