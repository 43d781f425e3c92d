package service

import (
	"context"
	"errors"
	"strings"

	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"

	"gorm.io/gorm"
)

// TaxonomyService 岗位字典表(类别/子类别/部门/类型)的维护服务
type TaxonomyService struct {
	store *storage.MySQL
}

// NewTaxonomyService 创建字典服务
func NewTaxonomyService(store *storage.MySQL) *TaxonomyService {
	return &TaxonomyService{store: store}
}

// CreateCategory 新增岗位类别，名称唯一
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*models.JobCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("create_category", "名称不能为空")
	}
	category := &models.JobCategory{Name: name}
	if err := s.store.CreateJobCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(name, "create_category", "类别已存在")
		}
		return nil, err
	}
	return category, nil
}

// ListCategories 全量岗位类别
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]models.JobCategory, error) {
	return s.store.ListJobCategories(ctx)
}

// DeleteCategory 按ID删除岗位类别
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint64) error {
	affected, err := s.store.DeleteJobCategory(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError("", "delete_category")
	}
	return nil
}

// CreateSubCategory 新增子类别，需归属一个类别
func (s *TaxonomyService) CreateSubCategory(ctx context.Context, name, categoryName string) (*models.JobSubCategory, error) {
	name = strings.TrimSpace(name)
	categoryName = strings.TrimSpace(categoryName)
	if name == "" || categoryName == "" {
		return nil, NewValidationError("create_sub_category", "名称与所属类别不能为空")
	}
	sub := &models.JobSubCategory{Name: name, CategoryName: categoryName}
	if err := s.store.CreateJobSubCategory(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(name, "create_sub_category", "子类别已存在")
		}
		return nil, err
	}
	return sub, nil
}

// ListSubCategories 子类别列表，categoryName为空时返回全部
func (s *TaxonomyService) ListSubCategories(ctx context.Context, categoryName string) ([]models.JobSubCategory, error) {
	return s.store.ListJobSubCategories(ctx, categoryName)
}

// DeleteSubCategory 按ID删除子类别
func (s *TaxonomyService) DeleteSubCategory(ctx context.Context, id uint64) error {
	affected, err := s.store.DeleteJobSubCategory(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError("", "delete_sub_category")
	}
	return nil
}

// CreateSector 新增部门类别
func (s *TaxonomyService) CreateSector(ctx context.Context, name string) (*models.JobSectorRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("create_sector", "名称不能为空")
	}
	sector := &models.JobSectorRecord{Name: name}
	if err := s.store.CreateJobSector(ctx, sector); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(name, "create_sector", "部门类别已存在")
		}
		return nil, err
	}
	return sector, nil
}

// ListSectors 全量部门类别
func (s *TaxonomyService) ListSectors(ctx context.Context) ([]models.JobSectorRecord, error) {
	return s.store.ListJobSectors(ctx)
}

// DeleteSector 按ID删除部门类别
func (s *TaxonomyService) DeleteSector(ctx context.Context, id uint64) error {
	affected, err := s.store.DeleteJobSector(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError("", "delete_sector")
	}
	return nil
}

// CreateJobType 新增岗位类型
func (s *TaxonomyService) CreateJobType(ctx context.Context, name string) (*models.JobTypeRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("create_job_type", "名称不能为空")
	}
	jobType := &models.JobTypeRecord{Name: name}
	if err := s.store.CreateJobType(ctx, jobType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError(name, "create_job_type", "岗位类型已存在")
		}
		return nil, err
	}
	return jobType, nil
}

// ListJobTypes 全量岗位类型
func (s *TaxonomyService) ListJobTypes(ctx context.Context) ([]models.JobTypeRecord, error) {
	return s.store.ListJobTypes(ctx)
}

// DeleteJobType 按ID删除岗位类型
func (s *TaxonomyService) DeleteJobType(ctx context.Context, id uint64) error {
	affected, err := s.store.DeleteJobType(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError("", "delete_job_type")
	}
	return nil
}
