package service

import (
	"path"
	"strings"
)

// ResolveUploadPath 把文件的内部存储位置规范化为实体记录中保存的公开相对路径。
// 含有uploads/段时从该段起截取并统一为正斜杠；否则回退到 uploads/<entityKind>/<basename>。
// 纯字符串函数，无I/O，任何输入都返回一个路径
func ResolveUploadPath(internalPath, entityKind string) string {
	normalized := strings.ReplaceAll(internalPath, "\\", "/")

	if idx := strings.Index(normalized, "uploads/"); idx >= 0 {
		return normalized[idx:]
	}

	base := path.Base(normalized)
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return "uploads/" + entityKind + "/" + base
}
