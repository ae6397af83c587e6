package pagination

import "math"

// MaxOffset is the largest skip count a listing may request. It fits both a
// Postgres OFFSET and a Mongo skip on every platform.
const MaxOffset = math.MaxInt32

// MaxPage returns the last page whose offset stays within MaxOffset.
func MaxPage(limit int) int {
	if limit < 1 {
		return 1
	}
	return MaxOffset/limit + 1
}

// CalculateOffset converts a 1-based page into a skip count, saturating at
// MaxOffset.
//
//   - Page 1, Limit 20 -> Offset 0
//   - Page 3, Limit 10 -> Offset 20
func CalculateOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page > MaxPage(limit) {
		return MaxOffset
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit), and at least 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit < 1 {
		return 1 // 空でも1ページ
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
