package handler

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"
	"job-admin-go/internal/service"
	"job-admin-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// JobHandler 负责岗位聚合的HTTP适配
type JobHandler struct {
	cfg     *config.Config
	jobs    *service.JobService
	storage *storage.Storage
	logger  *log.Logger
}

// NewJobHandler 创建一个新的 JobHandler 实例
func NewJobHandler(cfg *config.Config, st *storage.Storage, jobs *service.JobService) *JobHandler {
	return &JobHandler{
		cfg:     cfg,
		jobs:    jobs,
		storage: st,
		logger:  log.New(os.Stdout, "[JobHandler] ", log.LstdFlags|log.Lshortfile),
	}
}

// HandleCreateJob 处理创建岗位的请求
// POST /api/v1/jobs
func (h *JobHandler) HandleCreateJob(ctx context.Context, c *app.RequestContext) {
	var in service.CreateJobInput
	if err := json.Unmarshal(c.Request.Body(), &in); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
		return
	}

	job, err := h.jobs.Create(ctx, in)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusCreated, utils.H{
		"message": "岗位创建成功",
		"data":    job,
	})
}

// HandleGetJob 处理查询单个岗位的请求
// GET /api/v1/jobs/:job_id
func (h *JobHandler) HandleGetJob(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "job_id 不能为空"})
		return
	}

	job, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"data": job})
}

// HandleListJobs 处理分页查询岗位的请求
// GET /api/v1/jobs?page=1&page_size=20&status=0
func (h *JobHandler) HandleListJobs(ctx context.Context, c *app.RequestContext) {
	opts := storage.ListJobsOptions{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, err := strconv.Atoi(statusStr)
		if err != nil {
			c.JSON(consts.StatusBadRequest, utils.H{"error": "status 必须是整数"})
			return
		}
		opts.Status = &status
	}
	opts.FromDate = int64(queryInt(c, "from_date", 0))
	opts.ToDate = int64(queryInt(c, "to_date", 0))

	jobs, total, err := h.jobs.List(ctx, opts)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"data":        jobs,
		"total_count": total,
		"page":        opts.Page,
		"page_size":   opts.PageSize,
	})
}

// HandleSaveJobSection 处理保存岗位分段的请求，payload为该分段的字段集合
// PUT /api/v1/jobs/:job_id/sections/:section
func (h *JobHandler) HandleSaveJobSection(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	sectionName := c.Param("section")
	if jobID == "" || sectionName == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "job_id 和 section 不能为空"})
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(c.Request.Body(), &payload); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
		return
	}

	job, err := h.jobs.SaveSection(ctx, jobID, sectionName, payload)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"message": "分段保存成功",
		"section": sectionName,
		"data":    job,
	})
}

// HandleUploadJobFile 处理岗位附件上传：写入对象存储后把公开路径追加到files列表
// POST /api/v1/jobs/:job_id/files (multipart)
func (h *JobHandler) HandleUploadJobFile(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "job_id 不能为空"})
		return
	}
	if h.storage.MinIO == nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "对象存储不可用"})
		return
	}

	// 先确认岗位存在，避免把孤儿对象写进存储桶
	if _, err := h.jobs.Get(ctx, jobID); err != nil {
		writeError(ctx, c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
		return
	}

	if err := validateUploadFile(&h.cfg.Upload, fileHeader.Filename, fileHeader.Size); err != nil {
		writeError(ctx, c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
		return
	}
	defer file.Close()

	objectKey, err := h.storage.MinIO.UploadEntityFile(ctx, constants.EntityKindJob, jobID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.logger.Printf("上传岗位附件失败 JobID: %s: %v", jobID, err)
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "上传文件失败"})
		return
	}

	publicPath := service.ResolveUploadPath(objectKey, constants.EntityKindJob)

	job, err := h.jobs.AppendFiles(ctx, jobID, []string{publicPath})
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"message": "文件上传成功",
		"path":    publicPath,
		"data":    job,
	})
}

// HandleDeleteJobArrayItem 处理删除岗位数组字段元素的请求
// DELETE /api/v1/jobs/:job_id/arrays/:field/:index
func (h *JobHandler) HandleDeleteJobArrayItem(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	fieldName := c.Param("field")
	index, err := strconv.Atoi(c.Param("index"))
	if jobID == "" || fieldName == "" || err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "路径参数不合法"})
		return
	}

	job, svcErr := h.jobs.DeleteArrayItem(ctx, jobID, fieldName, index)
	if svcErr != nil {
		writeError(ctx, c, svcErr)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"message": "数组元素已删除",
		"data":    job,
	})
}

// HandleDeleteJob 处理删除岗位的请求
// DELETE /api/v1/jobs/:job_id
func (h *JobHandler) HandleDeleteJob(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "job_id 不能为空"})
		return
	}

	if err := h.jobs.Delete(ctx, jobID); err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"message": "岗位已删除", "job_id": jobID})
}

// HandleGetJobCompletion 处理查询岗位分段完成度的请求
// GET /api/v1/jobs/:job_id/completion
func (h *JobHandler) HandleGetJobCompletion(ctx context.Context, c *app.RequestContext) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "job_id 不能为空"})
		return
	}

	report, err := h.jobs.GetCompletion(ctx, jobID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"job_id": jobID,
		"data":   report,
	})
}

// queryInt 读取整数查询参数，缺失或非法时返回默认值
func queryInt(c *app.RequestContext, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return defaultValue
	}
	if value == 0 {
		return defaultValue
	}
	return value
}
