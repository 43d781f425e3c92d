package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// spanRecorder 只截获错误记录相关调用，其余方法落到noop span上
type spanRecorder struct {
	trace.Span
	recorded []error
	attrs    []attribute.KeyValue
	status   codes.Code
	desc     string
}

func newSpanRecorder() *spanRecorder {
	return &spanRecorder{Span: trace.SpanFromContext(context.Background())}
}

func (s *spanRecorder) RecordError(err error, _ ...trace.EventOption) {
	s.recorded = append(s.recorded, err)
}

func (s *spanRecorder) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *spanRecorder) SetStatus(code codes.Code, description string) {
	s.status = code
	s.desc = description
}

func (s *spanRecorder) attr(key string) string {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestRecordErrorSetsTypeAndStatus(t *testing.T) {
	span := newSpanRecorder()
	err := errors.New("连接中断")

	RecordError(span, err, ErrorTypeDB)

	assert.Equal(t, []error{err}, span.recorded)
	assert.Equal(t, "db", span.attr("error.type"))
	assert.Equal(t, "连接中断", span.attr("error.message"))
	assert.Equal(t, codes.Error, span.status)
}

func TestRecordErrorIgnoresNil(t *testing.T) {
	span := newSpanRecorder()

	RecordError(span, nil, ErrorTypeDB)
	RecordError(nil, errors.New("x"), ErrorTypeDB)

	assert.Empty(t, span.recorded)
	assert.Empty(t, span.attrs)
}

func TestRecordHTTPErrorCategorizesStatusCode(t *testing.T) {
	cases := []struct {
		name         string
		statusCode   int
		wantCategory string
	}{
		{"客户端错误", 400, "client_error"},
		{"服务端错误", 503, "server_error"},
		{"未分类", 302, "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			span := newSpanRecorder()
			RecordHTTPError(span, errors.New("请求失败"), tc.statusCode)

			assert.Equal(t, "http", span.attr("error.type"))
			assert.Equal(t, tc.wantCategory, span.attr("error.category"))
			assert.Equal(t, codes.Error, span.status)
		})
	}
}

func TestRecordErrorWithInfoAppendsAttributes(t *testing.T) {
	span := newSpanRecorder()

	RecordErrorWithInfo(span, errors.New("发布失败"), ErrorTypeRabbitMQ,
		attribute.String("messaging.message_id", "msg-1"))

	assert.Equal(t, "rabbitmq", span.attr("error.type"))
	assert.Equal(t, "msg-1", span.attr("messaging.message_id"))
}
