package service

import (
	"encoding/json"
	"fmt"
	"time"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"
	"job-admin-go/internal/storage/models"
)

// sectionSavedEvent 分段保存事件，outbox relay将其投递到实体事件交换机
type sectionSavedEvent struct {
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	Section    string `json:"section"`
	SavedAt    int64  `json:"saved_at"`
}

// studentCreatedEvent 学员创建事件
type studentCreatedEvent struct {
	StudentID    string `json:"student_id"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
	CreatedAt    int64  `json:"created_at"`
}

// newSectionSavedMessage 构造待入库的分段保存outbox消息
func newSectionSavedMessage(cfg *config.RabbitMQConfig, entityKind, entityID, sectionName string) (*models.OutboxMessage, error) {
	if cfg == nil || cfg.EntityEventsExchange == "" {
		return nil, nil // 未配置消息队列时跳过
	}
	payload, err := json.Marshal(sectionSavedEvent{
		EntityKind: entityKind,
		EntityID:   entityID,
		Section:    sectionName,
		SavedAt:    time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("序列化分段保存事件失败: %w", err)
	}
	return &models.OutboxMessage{
		AggregateType:    entityKind,
		AggregateID:      entityID,
		EventType:        constants.EventSectionSaved,
		Payload:          string(payload),
		TargetExchange:   cfg.EntityEventsExchange,
		TargetRoutingKey: cfg.SectionSavedRoutingKey,
		Status:           models.OutboxStatusPending,
	}, nil
}

// newStudentCreatedMessage 构造待入库的学员创建outbox消息
func newStudentCreatedMessage(cfg *config.RabbitMQConfig, student *models.Student) (*models.OutboxMessage, error) {
	if cfg == nil || cfg.EntityEventsExchange == "" {
		return nil, nil
	}
	payload, err := json.Marshal(studentCreatedEvent{
		StudentID:    student.StudentID,
		Email:        student.Email,
		ReferralCode: student.ReferralCode,
		CreatedAt:    student.CreatedDate,
	})
	if err != nil {
		return nil, fmt.Errorf("序列化学员创建事件失败: %w", err)
	}
	return &models.OutboxMessage{
		AggregateType:    constants.EntityKindStudent,
		AggregateID:      student.StudentID,
		EventType:        constants.EventStudentCreated,
		Payload:          string(payload),
		TargetExchange:   cfg.EntityEventsExchange,
		TargetRoutingKey: cfg.StudentCreatedRoutingKey,
		Status:           models.OutboxStatusPending,
	}, nil
}
