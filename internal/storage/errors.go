package storage

import "errors"

// 存储层哨兵错误，由上层翻译为对外的错误类别
var (
	ErrArrayIndexOutOfRange = errors.New("数组下标越界")
)
