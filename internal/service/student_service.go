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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentService 学员聚合的应用服务：注册、分段保存、资料完成度、推荐码
type StudentService struct {
	store    *storage.MySQL
	redis    *storage.Redis
	cfg      *config.Config
	referral *ReferralGenerator
}

// NewStudentService 创建学员服务
func NewStudentService(store *storage.MySQL, redis *storage.Redis, cfg *config.Config) *StudentService {
	return &StudentService{
		store:    store,
		redis:    redis,
		cfg:      cfg,
		referral: NewReferralGenerator(),
	}
}

// CreateStudentInput 注册学员的入参，referredByCode可选
type CreateStudentInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	Password       string `json:"password"`
	JobType        string `json:"jobType"`
	ReferredByCode string `json:"referredByCode"`
}

// Create 注册学员：校验必填字段、解析推荐人、生成唯一推荐码，
// 根记录与student.created消息在同一事务内落库
func (s *StudentService) Create(ctx context.Context, in CreateStudentInput) (*models.Student, error) {
	if missing := missingStudentFields(in); len(missing) > 0 {
		return nil, NewValidationError("create_student", "缺少必填字段: "+strings.Join(missing, ", "))
	}
	if !containsString(constants.JobTypes, in.JobType) {
		return nil, NewValidationError("create_student", "无效的岗位类型: "+in.JobType)
	}

	// 推荐人先解析：无效推荐码直接拒绝注册
	var referredByID *string
	var referredByCode string
	if code := strings.TrimSpace(in.ReferredByCode); code != "" {
		referrer, err := s.store.GetStudentByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("create_student", "无效的推荐码: "+code)
			}
			return nil, err
		}
		referredByID = &referrer.StudentID
		referredByCode = referrer.ReferralCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	studentID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成学员ID失败: %w", err)
	}

	code, releaseCode, err := s.allocateReferralCode(ctx, studentID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	student := &models.Student{
		StudentID:         studentID.String(),
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Mobile:            in.Mobile,
		PasswordHash:      string(hash),
		JobTypeRef:        in.JobType,
		ReferralCode:      code,
		ReferredByID:      referredByID,
		ReferredByCode:    referredByCode,
		ProfileCompletion: emptyStudentCompletion(),
		CreatedDate:       now,
		LastUpdated:       now,
	}

	msg, err := newStudentCreatedMessage(&s.cfg.RabbitMQ, student)
	if err != nil {
		releaseCode()
		return nil, err
	}

	if err := s.store.CreateStudent(ctx, student, msg); err != nil {
		releaseCode()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(student.StudentID, "create_student", "邮箱、手机号或推荐码已被占用")
		}
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("student_id", student.StudentID).
		Str("referral_code", student.ReferralCode).
		Msg("学员已注册")
	return student, nil
}

// Get 返回学员根记录
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.store.GetStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(studentID, "get_student")
		}
		return nil, err
	}
	return student, nil
}

// List 分页查询学员
func (s *StudentService) List(ctx context.Context, opts storage.ListStudentsOptions) ([]models.Student, int64, error) {
	return s.store.ListStudents(ctx, opts)
}

// SaveSection 保存学员资料的一个命名分段，流程与岗位侧一致：
// Mapper规范化 → 建议锁 → 卫星表upsert/替换 + 完成标记 + outbox 单事务落库
func (s *StudentService) SaveSection(ctx context.Context, studentID, sectionName string, payload map[string]any) (*models.Student, error) {
	upd, err := section.MapStudent(studentID, sectionName, payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}

	release, err := s.acquireSectionLock(ctx, constants.EntityKindStudent, studentID, sectionName)
	if err != nil {
		return nil, err
	}
	defer release()

	msg, err := newSectionSavedMessage(&s.cfg.RabbitMQ, constants.EntityKindStudent, studentID, sectionName)
	if err != nil {
		return nil, err
	}

	student, err := s.store.SaveStudentSection(ctx, upd, msg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(studentID, "save_student_section")
		}
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("student_id", studentID).
		Str("section", sectionName).
		Msg("学员分段已保存")
	return student, nil
}

// GetCompletion 返回资料完成标记与派生百分比
func (s *StudentService) GetCompletion(ctx context.Context, studentID string) (CompletionReport, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return CompletionReport{}, err
	}
	return BuildCompletionReport(student.ProfileCompletion, studentCompletionKeys()), nil
}

// ListWorkExperiences 学员全部工作经历
func (s *StudentService) ListWorkExperiences(ctx context.Context, studentID string) ([]models.StudentWorkExperience, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.ListStudentWorkExperiences(ctx, studentID)
}

// ListCertifications 学员全部证书
func (s *StudentService) ListCertifications(ctx context.Context, studentID string) ([]models.StudentCertification, error) {
	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.ListStudentCertifications(ctx, studentID)
}

// DeleteCertification 删除单条证书记录
func (s *StudentService) DeleteCertification(ctx context.Context, studentID string, certID uint64) error {
	affected, err := s.store.DeleteStudentCertification(ctx, studentID, certID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError(studentID, "delete_certification")
	}
	return nil
}

// Delete 仅删除学员根记录，卫星数据保留
func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	affected, err := s.store.DeleteStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError(studentID, "delete_student")
	}
	logger.Ctx(ctx).Info().Str("student_id", studentID).Msg("学员已删除")
	return nil
}

// Purge 删除学员及其全部卫星数据
func (s *StudentService) Purge(ctx context.Context, studentID string) error {
	affected, err := s.store.PurgeStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError(studentID, "purge_student")
	}
	logger.Ctx(ctx).Info().Str("student_id", studentID).Msg("学员及全部资料已清除")
	return nil
}

// allocateReferralCode 生成一个数据库与Redis预留中都未被占用的推荐码。
// 返回的release用于注册失败时主动释放预留
func (s *StudentService) allocateReferralCode(ctx context.Context, studentID string) (string, func(), error) {
	code, err := s.referral.Generate(ctx, func(ctx context.Context, candidate string) (bool, error) {
		exists, err := s.store.ReferralCodeExists(ctx, candidate)
		if err != nil || exists {
			return true, err
		}
		if s.redis == nil {
			return false, nil
		}
		reserved, err := s.redis.ReserveReferralCode(ctx, candidate, studentID)
		if err != nil {
			// Redis故障时退化为仅依赖数据库唯一索引
			logger.Ctx(ctx).Warn().Err(err).Msg("推荐码预留失败，降级为数据库唯一约束兜底")
			return false, nil
		}
		return !reserved, nil
	})
	if err != nil {
		return "", nil, err
	}

	release := func() {
		if s.redis == nil {
			return
		}
		if err := s.redis.ReleaseReferralReservation(context.Background(), code); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("code", code).Msg("释放推荐码预留失败")
		}
	}
	return code, release, nil
}

// acquireSectionLock 同岗位侧：Redis不可用时降级为无锁，锁被占用时返回冲突
func (s *StudentService) acquireSectionLock(ctx context.Context, entityKind, entityID, sectionName string) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}
	key := storage.SectionLockKey(entityKind, entityID, sectionName)
	lockValue, err := s.redis.AcquireLock(ctx, key, sectionLockTTL)
	if err != nil {
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

// emptyStudentCompletion 初始化13个资料分段的完成标记为0
func emptyStudentCompletion() datatypes.JSONMap {
	completion := datatypes.JSONMap{}
	for _, name := range section.StudentSections {
		completion[section.StudentCompletionKeys[name]] = 0
	}
	return completion
}

// studentCompletionKeys 完成度分母的固定key集合
func studentCompletionKeys() []string {
	keys := make([]string, 0, len(section.StudentSections))
	for _, name := range section.StudentSections {
		keys = append(keys, section.StudentCompletionKeys[name])
	}
	return keys
}

func missingStudentFields(in CreateStudentInput) []string {
	var missing []string
	checks := []struct {
		name  string
		value string
	}{
		{"firstName", in.FirstName},
		{"email", in.Email},
		{"mobile", in.Mobile},
		{"password", in.Password},
		{"jobType", in.JobType},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}
