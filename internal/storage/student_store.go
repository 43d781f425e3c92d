package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-admin-go/internal/section"
	"job-admin-go/internal/storage/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateStudent 插入学员聚合根并在同一事务写入创建事件。
// 唯一键冲突(邮箱/手机号/推荐码)由GORM翻译为ErrDuplicatedKey
func (m *MySQL) CreateStudent(ctx context.Context, student *models.Student, msg *models.OutboxMessage) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		if msg != nil {
			if err := tx.Create(msg).Error; err != nil {
				return fmt.Errorf("写入outbox消息失败: %w", err)
			}
		}
		return nil
	})
}

// GetStudentByID 按主键取学员根文档
func (m *MySQL) GetStudentByID(ctx context.Context, studentID string) (*models.Student, error) {
	var student models.Student
	if err := m.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// GetStudentByReferralCode 按推荐码查学员，用于创建时校验referralByCode
func (m *MySQL) GetStudentByReferralCode(ctx context.Context, code string) (*models.Student, error) {
	var student models.Student
	if err := m.db.WithContext(ctx).First(&student, "referral_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// ReferralCodeExists 推荐码查重
func (m *MySQL) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&models.Student{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("推荐码查重失败: %w", err)
	}
	return count > 0, nil
}

// ListStudentsOptions 学员列表查询参数
type ListStudentsOptions struct {
	Page     int
	PageSize int
	JobType  string // 按报考岗位类型过滤，空串表示不过滤
	FromDate int64  // created_date下界
	ToDate   int64  // created_date上界
}

// ListStudents 分页查询学员
func (m *MySQL) ListStudents(ctx context.Context, opts ListStudentsOptions) ([]models.Student, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	query := m.db.WithContext(ctx).Model(&models.Student{})
	if opts.JobType != "" {
		query = query.Where("job_type_ref = ?", opts.JobType)
	}
	if opts.FromDate > 0 {
		query = query.Where("created_date >= ?", opts.FromDate)
	}
	if opts.ToDate > 0 {
		query = query.Where("created_date <= ?", opts.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计学员总数失败: %w", err)
	}

	var students []models.Student
	err := query.Order("created_date DESC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&students).Error
	if err != nil {
		return nil, 0, fmt.Errorf("分页查询学员失败: %w", err)
	}
	return students, total, nil
}

// SaveStudentSection 在单个事务中完成：卫星记录upsert + 根文档完成标记 + outbox落库。
// 卫星表对student_id有唯一索引，冲突时整行更新，保证1:1分段永不产生第二行
func (m *MySQL) SaveStudentSection(ctx context.Context, upd *section.StudentUpdate, msg *models.OutboxMessage) (*models.Student, error) {
	var updated models.Student
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&student, "student_id = ?", upd.StudentID).Error; err != nil {
			return err
		}

		switch {
		case upd.Satellite != nil:
			// MySQL的ON DUPLICATE KEY UPDATE实现find-one-and-upsert语义
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}},
				UpdateAll: true,
			}).Create(upd.Satellite).Error; err != nil {
				return fmt.Errorf("upsert卫星记录失败: %w", err)
			}

		case upd.Section == section.StudentSectionWorkExperience:
			// 1:many分段整表重建：先清后插，保持列表顺序
			if err := tx.Where("student_id = ?", upd.StudentID).
				Delete(&models.StudentWorkExperience{}).Error; err != nil {
				return fmt.Errorf("清空工作经历失败: %w", err)
			}
			if len(upd.Experiences) > 0 {
				if err := tx.Create(&upd.Experiences).Error; err != nil {
					return fmt.Errorf("写入工作经历失败: %w", err)
				}
			}

		case upd.Section == section.StudentSectionCertifications:
			if err := tx.Where("student_id = ?", upd.StudentID).
				Delete(&models.StudentCertification{}).Error; err != nil {
				return fmt.Errorf("清空证书列表失败: %w", err)
			}
			if len(upd.Certificates) > 0 {
				if err := tx.Create(&upd.Certificates).Error; err != nil {
					return fmt.Errorf("写入证书列表失败: %w", err)
				}
			}
		}

		// 完成标记幂等置1，根文档同事务盖章
		completion := student.ProfileCompletion
		if completion == nil {
			completion = datatypes.JSONMap{}
		}
		completion[upd.CompletionKey] = 1

		if err := tx.Model(&models.Student{}).
			Where("student_id = ?", upd.StudentID).
			Updates(map[string]any{
				"profile_completion": completion,
				"last_updated":       time.Now().Unix(),
			}).Error; err != nil {
			return fmt.Errorf("更新完成标记失败: %w", err)
		}

		if msg != nil {
			if err := tx.Create(msg).Error; err != nil {
				return fmt.Errorf("写入outbox消息失败: %w", err)
			}
		}

		return tx.First(&updated, "student_id = ?", upd.StudentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetStudentSatellite 按student_id取一条1:1卫星记录，dest为模型指针
func (m *MySQL) GetStudentSatellite(ctx context.Context, studentID string, dest any) error {
	return m.db.WithContext(ctx).Where("student_id = ?", studentID).First(dest).Error
}

// ListStudentWorkExperiences 取学员全部工作经历
func (m *MySQL) ListStudentWorkExperiences(ctx context.Context, studentID string) ([]models.StudentWorkExperience, error) {
	var items []models.StudentWorkExperience
	err := m.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询工作经历失败: %w", err)
	}
	return items, nil
}

// ListStudentCertifications 取学员全部证书
func (m *MySQL) ListStudentCertifications(ctx context.Context, studentID string) ([]models.StudentCertification, error) {
	var items []models.StudentCertification
	err := m.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询证书列表失败: %w", err)
	}
	return items, nil
}

// DeleteStudentCertification 删除一条证书记录，并同事务盖章根文档
func (m *MySQL) DeleteStudentCertification(ctx context.Context, studentID string, certID uint64) (int64, error) {
	var affected int64
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND student_id = ?", certID, studentID).
			Delete(&models.StudentCertification{})
		if result.Error != nil {
			return fmt.Errorf("删除证书失败: %w", result.Error)
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Model(&models.Student{}).
			Where("student_id = ?", studentID).
			Update("last_updated", time.Now().Unix()).Error
	})
	return affected, err
}

// DeleteStudent 硬删除学员根文档，不级联卫星记录
func (m *MySQL) DeleteStudent(ctx context.Context, studentID string) (int64, error) {
	result := m.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.Student{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除学员失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PurgeStudent 管理端显式清理：根文档连同全部卫星记录一并删除
func (m *MySQL) PurgeStudent(ctx context.Context, studentID string) (int64, error) {
	var affected int64
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		satellites := []any{
			&models.StudentAddress{},
			&models.StudentBasicDetail{},
			&models.StudentBankInfo{},
			&models.StudentBodyDetail{},
			&models.StudentCareerPreferences{},
			&models.StudentDocumentUpload{},
			&models.StudentEducation{},
			&models.StudentEmergencyContact{},
			&models.StudentParentalInfo{},
			&models.StudentSkills{},
			&models.StudentSocialLinks{},
			&models.StudentWorkExperience{},
			&models.StudentCertification{},
		}
		for _, model := range satellites {
			if err := tx.Where("student_id = ?", studentID).Delete(model).Error; err != nil {
				return fmt.Errorf("清理卫星记录失败: %w", err)
			}
		}

		result := tx.Where("student_id = ?", studentID).Delete(&models.Student{})
		if result.Error != nil {
			return fmt.Errorf("删除学员根文档失败: %w", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return affected, err
}
