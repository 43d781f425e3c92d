package router

import (
	"context"

	"job-admin-go/internal/api/handler"
	"job-admin-go/internal/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册API路由。/health开放，其余管理端路由全部经过Bearer Token校验
func RegisterRoutes(
	h *server.Hertz,
	cfg *config.Config,
	jobHandler *handler.JobHandler,
	studentHandler *handler.StudentHandler,
	taxonomyHandler *handler.TaxonomyHandler,
) {
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")
	api.Use(adminAuth(cfg))

	// 岗位聚合
	api.POST("/jobs", jobHandler.HandleCreateJob)
	api.GET("/jobs", jobHandler.HandleListJobs)
	api.GET("/jobs/:job_id", jobHandler.HandleGetJob)
	api.DELETE("/jobs/:job_id", jobHandler.HandleDeleteJob)
	api.PUT("/jobs/:job_id/sections/:section", jobHandler.HandleSaveJobSection)
	api.POST("/jobs/:job_id/files", jobHandler.HandleUploadJobFile)
	api.DELETE("/jobs/:job_id/arrays/:field/:index", jobHandler.HandleDeleteJobArrayItem)
	api.GET("/jobs/:job_id/completion", jobHandler.HandleGetJobCompletion)

	// 学员聚合
	api.POST("/students", studentHandler.HandleCreateStudent)
	api.GET("/students", studentHandler.HandleListStudents)
	api.GET("/students/:student_id", studentHandler.HandleGetStudent)
	api.DELETE("/students/:student_id", studentHandler.HandleDeleteStudent)
	api.DELETE("/students/:student_id/purge", studentHandler.HandlePurgeStudent)
	api.PUT("/students/:student_id/sections/:section", studentHandler.HandleSaveStudentSection)
	api.POST("/students/:student_id/documents", studentHandler.HandleUploadStudentDocument)
	api.GET("/students/:student_id/completion", studentHandler.HandleGetStudentCompletion)
	api.GET("/students/:student_id/work-experiences", studentHandler.HandleListWorkExperiences)
	api.GET("/students/:student_id/certifications", studentHandler.HandleListCertifications)
	api.DELETE("/students/:student_id/certifications/:cert_id", studentHandler.HandleDeleteCertification)

	// 岗位字典
	api.POST("/taxonomy/categories", taxonomyHandler.HandleCreateCategory)
	api.GET("/taxonomy/categories", taxonomyHandler.HandleListCategories)
	api.DELETE("/taxonomy/categories/:id", taxonomyHandler.HandleDeleteCategory)
	api.POST("/taxonomy/sub-categories", taxonomyHandler.HandleCreateSubCategory)
	api.GET("/taxonomy/sub-categories", taxonomyHandler.HandleListSubCategories)
	api.DELETE("/taxonomy/sub-categories/:id", taxonomyHandler.HandleDeleteSubCategory)
	api.POST("/taxonomy/sectors", taxonomyHandler.HandleCreateSector)
	api.GET("/taxonomy/sectors", taxonomyHandler.HandleListSectors)
	api.DELETE("/taxonomy/sectors/:id", taxonomyHandler.HandleDeleteSector)
	api.POST("/taxonomy/job-types", taxonomyHandler.HandleCreateJobType)
	api.GET("/taxonomy/job-types", taxonomyHandler.HandleListJobTypes)
	api.DELETE("/taxonomy/job-types/:id", taxonomyHandler.HandleDeleteJobType)
}

// adminAuth 返回校验管理端Bearer Token的keyauth中间件
func adminAuth(cfg *config.Config) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			return cfg.Auth.AdminToken != "" && key == cfg.Auth.AdminToken, nil
		}),
		keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
			c.JSON(consts.StatusUnauthorized, utils.H{"error": "未授权"})
			c.Abort()
		}),
	)
}
