package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, current, size int) *gorm.DB {
	if query == nil || size <= 0 {
		return query
	}
	if current < 1 {
		current = 1
	}
	offset := (current - 1) * size
	if offset < 0 {
		offset = 0
	}
	return query.Limit(size).Offset(offset)
}
