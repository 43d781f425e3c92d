package outbox

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartWithoutPublisherIsNoop(t *testing.T) {
	// RabbitMQ降级为nil时中继不得启动轮询，否则首条outbox消息会触发空指针崩溃
	var buf bytes.Buffer
	relay := NewMessageRelay(nil, nil, log.New(&buf, "", 0))

	assert.NotPanics(t, func() {
		relay.Start()
		relay.Stop()
	})
	assert.Contains(t, buf.String(), "不启动")
	assert.NotContains(t, buf.String(), "outbox中继启动")
}
