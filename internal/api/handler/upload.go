package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"job-admin-go/internal/config"
	"job-admin-go/internal/service"
)

// validateUploadFile 按配置约束上传文件：单文件大小上限与扩展名白名单
func validateUploadFile(cfg *config.UploadConfig, filename string, size int64) error {
	if size > int64(cfg.MaxFileSizeMB)<<20 {
		return service.NewValidationError("upload_file",
			fmt.Sprintf("文件大小超过上限%dMB", cfg.MaxFileSizeMB))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range cfg.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return nil
		}
	}
	return service.NewValidationError("upload_file", "不支持的文件类型: "+ext)
}
