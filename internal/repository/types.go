package repository

import "time"

// ActivationCodeListFilter 查询激活码列表的过滤条件
type ActivationCodeListFilter struct {
	Current      int
	Size         int
	Code         string
	Type         *int
	TypeID       string
	Activated    *bool
	Refunded     *bool
	Revoked      *bool
	DataDateFrom *time.Time
	DataDateTo   *time.Time
}

// ActivationCodeExportFilter 导出激活码的过滤条件
type ActivationCodeExportFilter struct {
	DataDateFrom *time.Time
	DataDateTo   *time.Time
}

// CodeTypeListFilter 查询激活码类型列表的过滤条件
type CodeTypeListFilter struct {
	Current int
	Size    int
	Name    string
}
