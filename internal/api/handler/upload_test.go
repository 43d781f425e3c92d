package handler

import (
	"errors"
	"testing"

	"job-admin-go/internal/config"
	"job-admin-go/internal/service"

	"github.com/stretchr/testify/assert"
)

// 上传限制：大小超限与表外扩展名都按校验错误拒绝
func TestValidateUploadFile(t *testing.T) {
	cfg := &config.UploadConfig{
		MaxFileSizeMB:     10,
		AllowedExtensions: []string{".pdf", ".jpg", ".png"},
	}

	cases := []struct {
		name     string
		filename string
		size     int64
		wantErr  string
	}{
		{"合法PDF", "admit-card.pdf", 1 << 20, ""},
		{"扩展名大小写不敏感", "photo.JPG", 1 << 20, ""},
		{"刚好到上限", "scan.png", 10 << 20, ""},
		{"超过大小上限", "scan.pdf", 10<<20 + 1, "文件大小超过上限10MB"},
		{"表外扩展名", "payload.exe", 1 << 20, "不支持的文件类型: .exe"},
		{"无扩展名", "README", 1 << 20, "不支持的文件类型"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUploadFile(cfg, tc.filename, tc.size)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, service.ErrValidation), "上传限制错误应映射为校验错误")
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
