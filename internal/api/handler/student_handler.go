package handler

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"
	"job-admin-go/internal/section"
	"job-admin-go/internal/service"
	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// StudentHandler 负责学员聚合的HTTP适配
type StudentHandler struct {
	cfg      *config.Config
	students *service.StudentService
	storage  *storage.Storage
	logger   *log.Logger
}

// NewStudentHandler 创建一个新的 StudentHandler 实例
func NewStudentHandler(cfg *config.Config, st *storage.Storage, students *service.StudentService) *StudentHandler {
	return &StudentHandler{
		cfg:      cfg,
		students: students,
		storage:  st,
		logger:   log.New(os.Stdout, "[StudentHandler] ", log.LstdFlags|log.Lshortfile),
	}
}

// HandleCreateStudent 处理学员注册的请求
// POST /api/v1/students
func (h *StudentHandler) HandleCreateStudent(ctx context.Context, c *app.RequestContext) {
	var in service.CreateStudentInput
	if err := json.Unmarshal(c.Request.Body(), &in); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
		return
	}

	student, err := h.students.Create(ctx, in)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusCreated, utils.H{
		"message": "学员注册成功",
		"data":    student,
	})
}

// HandleGetStudent 处理查询学员根记录的请求
// GET /api/v1/students/:student_id
func (h *StudentHandler) HandleGetStudent(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	student, err := h.students.Get(ctx, studentID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"data": student})
}

// HandleListStudents 处理分页查询学员的请求
// GET /api/v1/students?page=1&page_size=20
func (h *StudentHandler) HandleListStudents(ctx context.Context, c *app.RequestContext) {
	opts := storage.ListStudentsOptions{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
		JobType:  c.Query("job_type"),
	}

	students, total, err := h.students.List(ctx, opts)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"data":        students,
		"total_count": total,
		"page":        opts.Page,
		"page_size":   opts.PageSize,
	})
}

// HandleSaveStudentSection 处理保存学员资料分段的请求
// PUT /api/v1/students/:student_id/sections/:section
func (h *StudentHandler) HandleSaveStudentSection(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	sectionName := c.Param("section")
	if studentID == "" || sectionName == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 和 section 不能为空"})
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(c.Request.Body(), &payload); err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
		return
	}

	student, err := h.students.SaveSection(ctx, studentID, sectionName, payload)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"message": "分段保存成功",
		"section": sectionName,
		"data":    student,
	})
}

// 证件类型(表单字段) → documentUpload分段的payload key
var studentDocumentFields = map[string]string{
	"photo":     "photoPath",
	"signature": "signaturePath",
	"idProof":   "idProofPath",
	"resume":    "resumePath",
}

// HandleUploadStudentDocument 处理学员证件上传：对象存储落盘后，
// 合并进documentUpload分段保存，单次上传不清空其他证件路径
// POST /api/v1/students/:student_id/documents (multipart, document_type=photo|signature|idProof|resume)
func (h *StudentHandler) HandleUploadStudentDocument(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}
	if h.storage.MinIO == nil {
		c.JSON(consts.StatusServiceUnavailable, utils.H{"error": "对象存储不可用"})
		return
	}

	docType := c.PostForm("document_type")
	payloadKey, ok := studentDocumentFields[docType]
	if !ok {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "document_type 不合法: " + docType})
		return
	}

	if _, err := h.students.Get(ctx, studentID); err != nil {
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

	objectKey, err := h.storage.MinIO.UploadEntityFile(ctx, constants.EntityKindStudent, studentID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.logger.Printf("上传学员证件失败 StudentID: %s: %v", studentID, err)
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "上传文件失败"})
		return
	}

	publicPath := service.ResolveUploadPath(objectKey, constants.EntityKindStudent)

	// 卫星表整行upsert，先读出已有路径再合并，避免抹掉其他证件
	payload := h.currentDocumentPayload(ctx, studentID)
	payload[payloadKey] = publicPath

	student, err := h.students.SaveSection(ctx, studentID, string(section.StudentSectionDocumentUpload), payload)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"message": "证件上传成功",
		"path":    publicPath,
		"data":    student,
	})
}

// currentDocumentPayload 读取已保存的证件路径作为本次合并的基础
func (h *StudentHandler) currentDocumentPayload(ctx context.Context, studentID string) map[string]any {
	payload := map[string]any{}
	var docs models.StudentDocumentUpload
	if err := h.storage.MySQL.GetStudentSatellite(ctx, studentID, &docs); err == nil {
		payload["photoPath"] = docs.PhotoPath
		payload["signaturePath"] = docs.SignaturePath
		payload["idProofPath"] = docs.IDProofPath
		payload["resumePath"] = docs.ResumePath
	}
	return payload
}

// HandleGetStudentCompletion 处理查询学员资料完成度的请求
// GET /api/v1/students/:student_id/completion
func (h *StudentHandler) HandleGetStudentCompletion(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	report, err := h.students.GetCompletion(ctx, studentID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{
		"student_id": studentID,
		"data":       report,
	})
}

// HandleListWorkExperiences 处理查询学员工作经历列表的请求
// GET /api/v1/students/:student_id/work-experiences
func (h *StudentHandler) HandleListWorkExperiences(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	items, err := h.students.ListWorkExperiences(ctx, studentID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleListCertifications 处理查询学员证书列表的请求
// GET /api/v1/students/:student_id/certifications
func (h *StudentHandler) HandleListCertifications(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	items, err := h.students.ListCertifications(ctx, studentID)
	if err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"data": items})
}

// HandleDeleteCertification 处理删除单条证书的请求
// DELETE /api/v1/students/:student_id/certifications/:cert_id
func (h *StudentHandler) HandleDeleteCertification(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	certID, err := strconv.ParseUint(c.Param("cert_id"), 10, 64)
	if studentID == "" || err != nil {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "路径参数不合法"})
		return
	}

	if err := h.students.DeleteCertification(ctx, studentID, certID); err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"message": "证书已删除"})
}

// HandleDeleteStudent 处理删除学员根记录的请求
// DELETE /api/v1/students/:student_id
func (h *StudentHandler) HandleDeleteStudent(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	if err := h.students.Delete(ctx, studentID); err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"message": "学员已删除", "student_id": studentID})
}

// HandlePurgeStudent 处理清除学员及其全部资料的请求
// DELETE /api/v1/students/:student_id/purge
func (h *StudentHandler) HandlePurgeStudent(ctx context.Context, c *app.RequestContext) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(consts.StatusBadRequest, utils.H{"error": "student_id 不能为空"})
		return
	}

	if err := h.students.Purge(ctx, studentID); err != nil {
		writeError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, utils.H{"message": "学员及全部资料已清除", "student_id": studentID})
}
