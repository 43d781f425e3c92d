package storage_test

import (
	"context"
	"testing"

	"job-admin-go/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishMessageNilClientReturnsError(t *testing.T) {
	// 连接降级后publisher为nil，发布必须返回错误而不是空指针崩溃
	var mq *storage.RabbitMQ

	assert.NotPanics(t, func() {
		err := mq.PublishMessage(context.Background(), "entity.events.exchange", "entity.section.saved", []byte(`{}`), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "未初始化")
	})
}
