package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"job-admin-go/internal/service"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// TaxonomyHandler 负责岗位字典表的HTTP适配
type TaxonomyHandler struct {
	taxonomy *service.TaxonomyService
}

// NewTaxonomyHandler 创建一个新的 TaxonomyHandler 实例
func NewTaxonomyHandler(taxonomy *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

type createNamedInput struct {
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"` // 仅子类别使用
}

func bindNamedInput(c *app.RequestContext) (createNamedInput, bool) {
	var in createNamedInput
	if err := json.Unmarshal(c.Request.Body(), &in); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
		return in, false
	}
	return in, true
}

func pathID(c *app.RequestContext) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "id 必须是正整数"})
		return 0, false
	}
	return id, true
}

// HandleCreateCategory POST /api/v1/taxonomy/categories
func (h *TaxonomyHandler) HandleCreateCategory(ctx context.Context, c *app.RequestContext) {
	in, ok := bindNamedInput(c)
	if !ok {
		return
	}
	category, err := h.taxonomy.CreateCategory(ctx, in.Name)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"data": category})
}

// HandleListCategories GET /api/v1/taxonomy/categories
func (h *TaxonomyHandler) HandleListCategories(ctx context.Context, c *app.RequestContext) {
	items, err := h.taxonomy.ListCategories(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleDeleteCategory DELETE /api/v1/taxonomy/categories/:id
func (h *TaxonomyHandler) HandleDeleteCategory(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteCategory(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"message": "类别已删除"})
}

// HandleCreateSubCategory POST /api/v1/taxonomy/sub-categories
func (h *TaxonomyHandler) HandleCreateSubCategory(ctx context.Context, c *app.RequestContext) {
	in, ok := bindNamedInput(c)
	if !ok {
		return
	}
	sub, err := h.taxonomy.CreateSubCategory(ctx, in.Name, in.CategoryName)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"data": sub})
}

// HandleListSubCategories GET /api/v1/taxonomy/sub-categories?category=xxx
func (h *TaxonomyHandler) HandleListSubCategories(ctx context.Context, c *app.RequestContext) {
	items, err := h.taxonomy.ListSubCategories(ctx, c.Query("category"))
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleDeleteSubCategory DELETE /api/v1/taxonomy/sub-categories/:id
func (h *TaxonomyHandler) HandleDeleteSubCategory(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteSubCategory(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"message": "子类别已删除"})
}

// HandleCreateSector POST /api/v1/taxonomy/sectors
func (h *TaxonomyHandler) HandleCreateSector(ctx context.Context, c *app.RequestContext) {
	in, ok := bindNamedInput(c)
	if !ok {
		return
	}
	sector, err := h.taxonomy.CreateSector(ctx, in.Name)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"data": sector})
}

// HandleListSectors GET /api/v1/taxonomy/sectors
func (h *TaxonomyHandler) HandleListSectors(ctx context.Context, c *app.RequestContext) {
	items, err := h.taxonomy.ListSectors(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleDeleteSector DELETE /api/v1/taxonomy/sectors/:id
func (h *TaxonomyHandler) HandleDeleteSector(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteSector(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"message": "部门类别已删除"})
}

// HandleCreateJobType POST /api/v1/taxonomy/job-types
func (h *TaxonomyHandler) HandleCreateJobType(ctx context.Context, c *app.RequestContext) {
	in, ok := bindNamedInput(c)
	if !ok {
		return
	}
	jobType, err := h.taxonomy.CreateJobType(ctx, in.Name)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, utils.H{"data": jobType})
}

// HandleListJobTypes GET /api/v1/taxonomy/job-types
func (h *TaxonomyHandler) HandleListJobTypes(ctx context.Context, c *app.RequestContext) {
	items, err := h.taxonomy.ListJobTypes(ctx)
	if err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleDeleteJobType DELETE /api/v1/taxonomy/job-types/:id
func (h *TaxonomyHandler) HandleDeleteJobType(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.taxonomy.DeleteJobType(ctx, id); err != nil {
		writeError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, utils.H{"message": "岗位类型已删除"})
}
