package storage

import (
	"context"
	"fmt"
	"time"

	"job-admin-go/internal/storage/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListJobsOptions 岗位列表查询参数：分页 + 状态 + 发布时间范围过滤
type ListJobsOptions struct {
	Page     int
	PageSize int
	Status   *int  // nil表示不过滤
	FromDate int64 // posted_date下界(unix秒)，0表示不过滤
	ToDate   int64 // posted_date上界，0表示不过滤
}

// CreateJob 插入岗位聚合根
func (m *MySQL) CreateJob(ctx context.Context, job *models.JobPosting) error {
	if err := m.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("创建岗位记录失败: %w", err)
	}
	return nil
}

// GetJobByID 按主键取完整岗位文档，未找到返回gorm.ErrRecordNotFound
func (m *MySQL) GetJobByID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := m.db.WithContext(ctx).First(&job, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs 分页查询岗位，返回当前页与总数
func (m *MySQL) ListJobs(ctx context.Context, opts ListJobsOptions) ([]models.JobPosting, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	query := m.db.WithContext(ctx).Model(&models.JobPosting{})
	if opts.Status != nil {
		query = query.Where("status = ?", *opts.Status)
	}
	if opts.FromDate > 0 {
		query = query.Where("posted_date >= ?", opts.FromDate)
	}
	if opts.ToDate > 0 {
		query = query.Where("posted_date <= ?", opts.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计岗位总数失败: %w", err)
	}

	var jobs []models.JobPosting
	err := query.Order("posted_date DESC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("分页查询岗位失败: %w", err)
	}
	return jobs, total, nil
}

// SaveJobSection 在单个事务中完成：列级合并 + 完成标记 + last_updated盖章 + outbox落库。
// 行锁保证同一分段的并发保存不会丢更新
func (m *MySQL) SaveJobSection(ctx context.Context, jobID string, updates map[string]any, sectionKey string, msg *models.OutboxMessage) (*models.JobPosting, error) {
	var updated models.JobPosting
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.JobPosting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "job_id = ?", jobID).Error; err != nil {
			return err
		}

		// 所有变更统一在此盖章
		now := time.Now().Unix()
		updates["job_last_updated_date"] = now

		// 完成标记幂等置1
		completion := job.SectionCompletion
		if completion == nil {
			completion = datatypes.JSONMap{}
		}
		completion[sectionKey] = 1
		updates["section_completion"] = completion

		if err := tx.Model(&models.JobPosting{}).
			Where("job_id = ?", jobID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("更新岗位分段失败: %w", err)
		}

		if msg != nil {
			if err := tx.Create(msg).Error; err != nil {
				return fmt.Errorf("写入outbox消息失败: %w", err)
			}
		}

		return tx.First(&updated, "job_id = ?", jobID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateJobColumns 通用列更新，同样盖章last_updated
func (m *MySQL) UpdateJobColumns(ctx context.Context, jobID string, updates map[string]any) error {
	updates["job_last_updated_date"] = time.Now().Unix()
	return m.db.WithContext(ctx).Model(&models.JobPosting{}).
		Where("job_id = ?", jobID).
		Updates(updates).Error
}

// AppendJobFiles 追加文件路径到岗位的files列表，从不整体替换
func (m *MySQL) AppendJobFiles(ctx context.Context, jobID string, paths []string) (*models.JobPosting, error) {
	var updated models.JobPosting
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.JobPosting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "job_id = ?", jobID).Error; err != nil {
			return err
		}

		existing, err := models.JSONToStringSlice(job.Files)
		if err != nil {
			return fmt.Errorf("解析已有文件列表失败: %w", err)
		}
		merged, err := models.StringSliceToJSON(append(existing, paths...))
		if err != nil {
			return fmt.Errorf("序列化文件列表失败: %w", err)
		}

		if err := tx.Model(&models.JobPosting{}).
			Where("job_id = ?", jobID).
			Updates(map[string]any{
				"files":                 merged,
				"job_last_updated_date": time.Now().Unix(),
			}).Error; err != nil {
			return fmt.Errorf("追加文件路径失败: %w", err)
		}

		return tx.First(&updated, "job_id = ?", jobID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveJobArrayItem 从岗位的JSON数组字段中删除指定下标的元素，其余元素保持相对顺序。
// column只允许files与selection_steps，越界校验由上层完成后仍在锁内复核
func (m *MySQL) RemoveJobArrayItem(ctx context.Context, jobID, column string, index int) (*models.JobPosting, error) {
	if column != "files" && column != "selection_steps" {
		return nil, fmt.Errorf("字段 %s 不是可编辑的数组字段", column)
	}

	var updated models.JobPosting
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.JobPosting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "job_id = ?", jobID).Error; err != nil {
			return err
		}

		raw := job.Files
		if column == "selection_steps" {
			raw = job.SelectionSteps
		}
		items, err := models.JSONToStringSlice(raw)
		if err != nil {
			return fmt.Errorf("解析数组字段失败: %w", err)
		}
		if index < 0 || index >= len(items) {
			return ErrArrayIndexOutOfRange
		}

		remaining := append(items[:index], items[index+1:]...)
		merged, err := models.StringSliceToJSON(remaining)
		if err != nil {
			return fmt.Errorf("序列化数组字段失败: %w", err)
		}

		if err := tx.Model(&models.JobPosting{}).
			Where("job_id = ?", jobID).
			Updates(map[string]any{
				column:                  merged,
				"job_last_updated_date": time.Now().Unix(),
			}).Error; err != nil {
			return fmt.Errorf("删除数组元素失败: %w", err)
		}

		return tx.First(&updated, "job_id = ?", jobID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteJob 硬删除岗位聚合根，返回受影响行数供上层判断NotFound
func (m *MySQL) DeleteJob(ctx context.Context, jobID string) (int64, error) {
	result := m.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&models.JobPosting{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除岗位失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
