// Package outbox 实现事务性发件箱：实体变更与事件在同一事务落库，
// 由中继轮询发布到RabbitMQ，补上"卫星写成功但通知丢失"的一致性缺口。
package outbox

import (
	"context"
	"log"
	"time"

	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"
	"job-admin-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPollingInterval = 5 * time.Second // 轮询outbox表的间隔
	defaultBatchSize       = 10              // 每次轮询处理的消息批量大小
	maxRetryCount          = 5               // 消息发布失败的最大重试次数
)

// MessageRelay 轮询outbox表并将实体事件发布到消息代理
type MessageRelay struct {
	db              *gorm.DB
	publisher       *storage.RabbitMQ
	logger          *log.Logger
	pollingInterval time.Duration
	batchSize       int
	done            chan struct{}
	tracer          trace.Tracer
}

// NewMessageRelay 创建一个新的MessageRelay实例
func NewMessageRelay(db *gorm.DB, publisher *storage.RabbitMQ, logger *log.Logger) *MessageRelay {
	return &MessageRelay{
		db:              db,
		publisher:       publisher,
		logger:          logger,
		pollingInterval: defaultPollingInterval,
		batchSize:       defaultBatchSize,
		done:            make(chan struct{}),
		tracer:          otel.Tracer("job-admin-go/outbox"),
	}
}

// Start 开始消息中继的轮询过程。
// 未配置消息代理时不启动轮询，消息保留在outbox表中等待后续投递
func (r *MessageRelay) Start() {
	if r.publisher == nil {
		r.logger.Println("RabbitMQ未配置，outbox中继不启动，消息将保留为PENDING")
		return
	}
	r.logger.Println("outbox中继启动")
	ticker := time.NewTicker(r.pollingInterval)

	go func() {
		for {
			select {
			case <-r.done:
				ticker.Stop()
				r.logger.Println("outbox中继已停止")
				return
			case <-ticker.C:
				if err := r.processPendingMessages(context.Background()); err != nil {
					r.logger.Printf("处理待发送消息失败: %v", err)
				}
			}
		}
	}()
}

// Stop 优雅地停止消息中继服务
func (r *MessageRelay) Stop() {
	close(r.done)
}

// processPendingMessages 获取并处理一批待发送的outbox消息。
// FOR UPDATE SKIP LOCKED跳过其他实例已锁定的行，支持水平扩展
func (r *MessageRelay) processPendingMessages(ctx context.Context) error {
	var messages []models.OutboxMessage

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", models.OutboxStatusPending).
		Order("created_at asc").
		Limit(r.batchSize).
		Find(&messages).Error
	if err != nil {
		r.logger.Printf("查询待发送outbox消息失败: %v", err)
		return err
	}

	// 空轮询不创建追踪span
	if len(messages) == 0 {
		return tx.Commit().Error
	}

	ctx, span := r.tracer.Start(ctx, "outbox.ProcessBatch",
		trace.WithAttributes(
			attribute.Int("messaging.batch.message_count", len(messages)),
		),
	)
	defer span.End()

	for _, msg := range messages {
		err := r.publisher.PublishMessage(
			ctx,
			msg.TargetExchange,
			msg.TargetRoutingKey,
			[]byte(msg.Payload),
			true, // 持久化投递
		)

		if err != nil {
			tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeRabbitMQ,
				attribute.Int64("messaging.outbox.message_id", int64(msg.ID)),
				attribute.String("messaging.destination", msg.TargetExchange),
				attribute.String("messaging.payload", tracing.SafePayload(msg.Payload)),
			)
			r.logger.Printf("发布消息ID %d (聚合:%s/%s)失败: %v, 重试次数: %d",
				msg.ID, msg.AggregateType, msg.AggregateID, err, msg.RetryCount+1)
			msg.RetryCount++
			msg.ErrorMessage = err.Error()
			if msg.RetryCount >= maxRetryCount {
				msg.Status = models.OutboxStatusFailed
			}
		} else {
			msg.Status = models.OutboxStatusSent
			now := time.Now()
			msg.ProcessedAt = &now
			msg.ErrorMessage = ""
		}

		// 更新失败则整个事务回滚，消息在下一次轮询中被重新拾取
		if err := tx.Save(&msg).Error; err != nil {
			r.logger.Printf("更新outbox消息ID %d 状态失败: %v", msg.ID, err)
			return err
		}
	}

	return tx.Commit().Error
}
