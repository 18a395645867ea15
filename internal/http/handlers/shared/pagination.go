package shared

// NormalizePagination 归一化分页参数。
func NormalizePagination(current, size int) (int, int) {
	if current < 1 {
		current = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return current, size
}
