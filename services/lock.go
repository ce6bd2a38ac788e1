package services

import (
	"sort"
	"sync"
)

// roomTypeLocks giữ một mutex cho mỗi room type. Mọi ghi inventory
// (tạo/sửa booking, tạo/sửa block) phải giữ mutex của các room type
// liên quan từ lúc kiểm tra khả dụng cho tới khi ghi xong, để hai
// request cùng tranh phòng cuối không cùng thấy "còn trống".
var roomTypeLocks sync.Map

func lockForRoomType(roomTypeID uint) *sync.Mutex {
	mu, _ := roomTypeLocks.LoadOrStore(roomTypeID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// LockRoomType khóa một room type, trả về hàm unlock
func LockRoomType(roomTypeID uint) func() {
	mu := lockForRoomType(roomTypeID)
	mu.Lock()
	return mu.Unlock
}

// LockRoomTypes khóa nhiều room type theo thứ tự ID tăng dần.
// Thứ tự cố định để hai block chồng danh sách room type không deadlock nhau.
func LockRoomTypes(roomTypeIDs []uint) func() {
	ids := make([]uint, 0, len(roomTypeIDs))
	seen := make(map[uint]bool, len(roomTypeIDs))
	for _, id := range roomTypeIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		mu := lockForRoomType(id)
		mu.Lock()
		locked = append(locked, mu)
	}

	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}
