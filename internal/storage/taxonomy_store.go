package storage

import (
	"context"
	"fmt"

	"job-admin-go/internal/storage/models"
)

// 字典表读写：类别/子类别/部门/岗位类型。
// 名称唯一性由数据库唯一索引保证，冲突时GORM翻译为ErrDuplicatedKey

// CreateJobCategory 新增岗位类别
func (m *MySQL) CreateJobCategory(ctx context.Context, category *models.JobCategory) error {
	if err := m.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("创建岗位类别失败: %w", err)
	}
	return nil
}

// ListJobCategories 类别全量列表
func (m *MySQL) ListJobCategories(ctx context.Context) ([]models.JobCategory, error) {
	var items []models.JobCategory
	if err := m.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询岗位类别失败: %w", err)
	}
	return items, nil
}

// DeleteJobCategory 删除岗位类别，返回受影响行数
func (m *MySQL) DeleteJobCategory(ctx context.Context, id uint64) (int64, error) {
	result := m.db.WithContext(ctx).Delete(&models.JobCategory{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("删除岗位类别失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// JobCategoryNameValid 校验类别名是否可用：字典表为空时放行(字典尚未初始化)，
// 否则名称必须已登记(大小写敏感)
func (m *MySQL) JobCategoryNameValid(ctx context.Context, name string) (bool, error) {
	var total int64
	if err := m.db.WithContext(ctx).Model(&models.JobCategory{}).Count(&total).Error; err != nil {
		return false, fmt.Errorf("统计岗位类别失败: %w", err)
	}
	if total == 0 {
		return true, nil
	}
	var matched int64
	if err := m.db.WithContext(ctx).Model(&models.JobCategory{}).
		Where("name = ?", name).Count(&matched).Error; err != nil {
		return false, fmt.Errorf("查询岗位类别失败: %w", err)
	}
	return matched > 0, nil
}

// CreateJobSubCategory 新增岗位子类别
func (m *MySQL) CreateJobSubCategory(ctx context.Context, sub *models.JobSubCategory) error {
	if err := m.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("创建岗位子类别失败: %w", err)
	}
	return nil
}

// ListJobSubCategories 子类别列表，categoryName非空时按所属类别过滤
func (m *MySQL) ListJobSubCategories(ctx context.Context, categoryName string) ([]models.JobSubCategory, error) {
	query := m.db.WithContext(ctx).Model(&models.JobSubCategory{})
	if categoryName != "" {
		query = query.Where("category_name = ?", categoryName)
	}
	var items []models.JobSubCategory
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询岗位子类别失败: %w", err)
	}
	return items, nil
}

// DeleteJobSubCategory 删除岗位子类别
func (m *MySQL) DeleteJobSubCategory(ctx context.Context, id uint64) (int64, error) {
	result := m.db.WithContext(ctx).Delete(&models.JobSubCategory{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("删除岗位子类别失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// JobSubCategoryNameValid 校验子类别名，规则同JobCategoryNameValid
func (m *MySQL) JobSubCategoryNameValid(ctx context.Context, name string) (bool, error) {
	var total int64
	if err := m.db.WithContext(ctx).Model(&models.JobSubCategory{}).Count(&total).Error; err != nil {
		return false, fmt.Errorf("统计岗位子类别失败: %w", err)
	}
	if total == 0 {
		return true, nil
	}
	var matched int64
	if err := m.db.WithContext(ctx).Model(&models.JobSubCategory{}).
		Where("name = ?", name).Count(&matched).Error; err != nil {
		return false, fmt.Errorf("查询岗位子类别失败: %w", err)
	}
	return matched > 0, nil
}

// CreateJobSector 新增部门类别
func (m *MySQL) CreateJobSector(ctx context.Context, sector *models.JobSectorRecord) error {
	if err := m.db.WithContext(ctx).Create(sector).Error; err != nil {
		return fmt.Errorf("创建部门类别失败: %w", err)
	}
	return nil
}

// ListJobSectors 部门类别全量列表
func (m *MySQL) ListJobSectors(ctx context.Context) ([]models.JobSectorRecord, error) {
	var items []models.JobSectorRecord
	if err := m.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询部门类别失败: %w", err)
	}
	return items, nil
}

// DeleteJobSector 删除部门类别
func (m *MySQL) DeleteJobSector(ctx context.Context, id uint64) (int64, error) {
	result := m.db.WithContext(ctx).Delete(&models.JobSectorRecord{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("删除部门类别失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CreateJobType 新增岗位类型
func (m *MySQL) CreateJobType(ctx context.Context, jobType *models.JobTypeRecord) error {
	if err := m.db.WithContext(ctx).Create(jobType).Error; err != nil {
		return fmt.Errorf("创建岗位类型失败: %w", err)
	}
	return nil
}

// ListJobTypes 岗位类型全量列表
func (m *MySQL) ListJobTypes(ctx context.Context) ([]models.JobTypeRecord, error) {
	var items []models.JobTypeRecord
	if err := m.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询岗位类型失败: %w", err)
	}
	return items, nil
}

// DeleteJobType 删除岗位类型
func (m *MySQL) DeleteJobType(ctx context.Context, id uint64) (int64, error) {
	result := m.db.WithContext(ctx).Delete(&models.JobTypeRecord{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("删除岗位类型失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
