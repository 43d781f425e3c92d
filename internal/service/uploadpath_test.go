package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveUploadPathFromUploadsSegment(t *testing.T) {
	// 含uploads/段时从该段起截取
	got := ResolveUploadPath("/var/data/uploads/job/123/logo.png", "job")
	assert.Equal(t, "uploads/job/123/logo.png", got)
}

func TestResolveUploadPathNormalizesSeparators(t *testing.T) {
	// Windows风格分隔符统一为正斜杠
	got := ResolveUploadPath(`C:\srv\uploads\student\42\photo.jpg`, "student")
	assert.Equal(t, "uploads/student/42/photo.jpg", got)
}

func TestResolveUploadPathFallback(t *testing.T) {
	// 不含uploads/段时回退到 uploads/<entityKind>/<basename>
	got := ResolveUploadPath("/tmp/scratch/notification.pdf", "job")
	assert.Equal(t, "uploads/job/notification.pdf", got)
}

func TestResolveUploadPathTotal(t *testing.T) {
	// 任何输入都要返回一个路径，从不报错
	assert.Equal(t, "uploads/student/file", ResolveUploadPath("", "student"))
	assert.Equal(t, "uploads/job/file", ResolveUploadPath("/", "job"))
}
