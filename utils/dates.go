package utils

import (
	"time"
)

// DateLayout định dạng ngày dùng trong toàn bộ API
const DateLayout = "02/01/2006"

// ParseDate chuyển chuỗi ngày string thành time.Time
func ParseDate(dateStr string) (time.Time, error) {
	parsedDate, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return parsedDate, nil
}

// FormatDate chuyển time.Time về chuỗi ngày
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Overlaps kiểm tra hai khoảng ngày nửa-mở [aStart, aEnd) và [bStart, bEnd) có giao nhau không.
// Hai khoảng sát lưng (aEnd == bStart) không tính là giao nhau.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Nights số đêm giữa check-in và check-out (khoảng nửa-mở)
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Today trả về 0h hôm nay theo giờ local
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
