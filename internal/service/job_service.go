package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"
	"job-admin-go/internal/logger"
	"job-admin-go/internal/section"
	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"

	"github.com/gofrs/uuid/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 分段保存建议锁的持有时长，超过后自动过期
const sectionLockTTL = 10 * time.Second

// JobService 岗位聚合的应用服务：创建、分段保存、文件追加、完成度查询
type JobService struct {
	store *storage.MySQL
	redis *storage.Redis
	cfg   *config.Config
}

// NewJobService 创建岗位服务
func NewJobService(store *storage.MySQL, redis *storage.Redis, cfg *config.Config) *JobService {
	return &JobService{
		store: store,
		redis: redis,
		cfg:   cfg,
	}
}

// CreateJobInput 创建岗位时的最小必填字段集
type CreateJobInput struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	AdvtNo           string `json:"advtNo"`
	Organization     string `json:"organization"`
	JobType          string `json:"jobType"`
	Sector           string `json:"sector"`
	Category         string `json:"category"`
	SubCategory      string `json:"subCategory"`
}

// Create 用最小字段集创建岗位，服务端填充默认值：status=0、posted_date=now、
// 全部分段完成标记置0
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.JobPosting, error) {
	if missing := missingJobFields(in); len(missing) > 0 {
		return nil, NewValidationError("create_job", "缺少必填字段: "+strings.Join(missing, ", "))
	}
	if !containsString(constants.JobTypes, in.JobType) {
		return nil, NewValidationError("create_job", "无效的岗位类型: "+in.JobType)
	}
	if !containsString(constants.JobSectors, in.Sector) {
		return nil, NewValidationError("create_job", "无效的部门类别: "+in.Sector)
	}

	// 类别/子类别对照字典表校验，字典未初始化(表为空)时放行
	validCategory, err := s.store.JobCategoryNameValid(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if !validCategory {
		return nil, NewValidationError("create_job", "未登记的岗位类别: "+in.Category)
	}
	validSubCategory, err := s.store.JobSubCategoryNameValid(ctx, in.SubCategory)
	if err != nil {
		return nil, err
	}
	if !validSubCategory {
		return nil, NewValidationError("create_job", "未登记的岗位子类别: "+in.SubCategory)
	}

	jobID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成岗位ID失败: %w", err)
	}

	now := time.Now().Unix()
	job := &models.JobPosting{
		JobID:              jobID.String(),
		Title:              in.Title,
		ShortDescription:   in.ShortDescription,
		AdvtNo:             in.AdvtNo,
		Organization:       in.Organization,
		JobType:            in.JobType,
		Sector:             in.Sector,
		Category:           in.Category,
		SubCategory:        in.SubCategory,
		Status:             constants.JobStatusActive,
		PostedDate:         now,
		JobLastUpdatedDate: now,
		SectionCompletion:  emptyJobCompletion(),
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(job.JobID, "create_job", "岗位记录已存在")
		}
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("job_id", job.JobID).
		Str("title", job.Title).
		Msg("岗位已创建")
	return job, nil
}

// Get 返回完整岗位文档
func (s *JobService) Get(ctx context.Context, jobID string) (*models.JobPosting, error) {
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(jobID, "get_job")
		}
		return nil, err
	}
	return job, nil
}

// List 分页查询岗位
func (s *JobService) List(ctx context.Context, opts storage.ListJobsOptions) ([]models.JobPosting, int64, error) {
	return s.store.ListJobs(ctx, opts)
}

// SaveSection 保存一个命名分段：Mapper规范化 → 原子列级合并 + 完成标记 + outbox。
// 同一(实体,分段)的并发保存由Redis建议锁串行化，未拿到锁的请求返回冲突让客户端重试
func (s *JobService) SaveSection(ctx context.Context, jobID, sectionName string, payload map[string]any) (*models.JobPosting, error) {
	// 映射先行：未知分段名在任何写入前被拒绝
	updates, err := section.MapJob(sectionName, payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, jobID); err != nil {
		return nil, err
	}

	release, err := s.acquireSectionLock(ctx, constants.EntityKindJob, jobID, sectionName)
	if err != nil {
		return nil, err
	}
	defer release()

	msg, err := newSectionSavedMessage(&s.cfg.RabbitMQ, constants.EntityKindJob, jobID, sectionName)
	if err != nil {
		return nil, err
	}

	job, err := s.store.SaveJobSection(ctx, jobID, updates, sectionName, msg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(jobID, "save_job_section")
		}
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("job_id", jobID).
		Str("section", sectionName).
		Msg("岗位分段已保存")
	return job, nil
}

// AppendFiles 向岗位的文件路径列表追加若干条目
func (s *JobService) AppendFiles(ctx context.Context, jobID string, paths []string) (*models.JobPosting, error) {
	if len(paths) == 0 {
		return nil, NewValidationError("append_job_files", "文件路径列表不能为空")
	}
	job, err := s.store.AppendJobFiles(ctx, jobID, paths)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(jobID, "append_job_files")
		}
		return nil, err
	}
	return job, nil
}

// 数组字段名(API入参) → 数据库列
var jobArrayColumns = map[string]string{
	"files":          "files",
	"selectionSteps": "selection_steps",
}

// DeleteArrayItem 删除数组字段中指定下标的元素，越界或非数组字段返回校验错误
func (s *JobService) DeleteArrayItem(ctx context.Context, jobID, fieldName string, index int) (*models.JobPosting, error) {
	column, ok := jobArrayColumns[fieldName]
	if !ok {
		return nil, NewValidationError("delete_job_array_item", "字段不是可编辑的数组: "+fieldName)
	}
	if index < 0 {
		return nil, NewValidationError("delete_job_array_item", fmt.Sprintf("下标越界: %d", index))
	}

	job, err := s.store.RemoveJobArrayItem(ctx, jobID, column, index)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, NewNotFoundError(jobID, "delete_job_array_item")
		case errors.Is(err, storage.ErrArrayIndexOutOfRange):
			return nil, NewValidationError("delete_job_array_item", fmt.Sprintf("下标越界: %d", index))
		default:
			return nil, err
		}
	}
	return job, nil
}

// Delete 硬删除岗位
func (s *JobService) Delete(ctx context.Context, jobID string) error {
	affected, err := s.store.DeleteJob(ctx, jobID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError(jobID, "delete_job")
	}
	logger.Ctx(ctx).Info().Str("job_id", jobID).Msg("岗位已删除")
	return nil
}

// GetCompletion 返回岗位的分段完成标记与派生百分比
func (s *JobService) GetCompletion(ctx context.Context, jobID string) (CompletionReport, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return CompletionReport{}, err
	}
	return BuildCompletionReport(job.SectionCompletion, jobCompletionKeys()), nil
}

// acquireSectionLock 获取(实体,分段)粒度的建议锁。Redis未配置时退化为
// 仅靠数据库行锁串行化；锁被占用时返回冲突
func (s *JobService) acquireSectionLock(ctx context.Context, entityKind, entityID, sectionName string) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}
	key := storage.SectionLockKey(entityKind, entityID, sectionName)
	lockValue, err := s.redis.AcquireLock(ctx, key, sectionLockTTL)
	if err != nil {
		// Redis故障不阻塞保存，数据库事务仍保证单次写入的原子性
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("获取分段锁失败，降级为无锁保存")
		return func() {}, nil
	}
	if lockValue == "" {
		return nil, NewConflictError(entityID, "save_section", "该分段正在被其他请求保存")
	}
	return func() {
		if _, err := s.redis.ReleaseLock(context.Background(), key, lockValue); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("释放分段锁失败")
		}
	}, nil
}

// emptyJobCompletion 初始化全部分段完成标记为0
func emptyJobCompletion() datatypes.JSONMap {
	completion := datatypes.JSONMap{}
	for _, name := range section.JobSections {
		completion[string(name)] = 0
	}
	return completion
}

// jobCompletionKeys 完成度分母的固定key集合
func jobCompletionKeys() []string {
	keys := make([]string, 0, len(section.JobSections))
	for _, name := range section.JobSections {
		keys = append(keys, string(name))
	}
	return keys
}

func missingJobFields(in CreateJobInput) []string {
	var missing []string
	checks := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"shortDescription", in.ShortDescription},
		{"advtNo", in.AdvtNo},
		{"organization", in.Organization},
		{"jobType", in.JobType},
		{"sector", in.Sector},
		{"category", in.Category},
		{"subCategory", in.SubCategory},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
