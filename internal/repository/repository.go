package repository

import "errors"

// ErrNotFound 实体不存在（调用方据此映射 HTTP 404）
var ErrNotFound = errors.New("not found")
