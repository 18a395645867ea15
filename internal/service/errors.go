package service

import (
	"errors"
	"fmt"
	"strings"
)

// 服务层统一的领域错误，handler 负责映射为响应消息。
var (
	ErrNotFound             = errors.New("record not found")
	ErrActivationCodeExists = errors.New("activation code already exists")
	ErrCodeTypeNameExists   = errors.New("code type name already exists")
	ErrNotActivated         = errors.New("activation code not activated")
	ErrStateConflict        = errors.New("lifecycle state changed concurrently")
	ErrCodeTypeInUse        = errors.New("code type still referenced by activation codes")
	ErrInvalidDate          = errors.New("invalid date value")
)

// ImportValidationError 批量导入结构校验失败，携带出错的激活码标识。
// 命中即整批中止，不写入任何行。
type ImportValidationError struct {
	Code string
}

func (e *ImportValidationError) Error() string {
	return fmt.Sprintf("activation code %s requires type or typeId", e.Code)
}

// isUniqueViolation 判断是否违反唯一性约束。
// 各数据库的约束错误类型不同，这里按错误消息统一识别。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
