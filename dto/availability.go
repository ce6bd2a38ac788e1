package dto

// ContributingBlock là một block đang góp phần chặn phòng trong khoảng ngày truy vấn
type ContributingBlock struct {
	ID              uint   `json:"id"`
	Scope           string `json:"scope"`
	Reason          string `json:"reason"`
	BlockAll        bool   `json:"blockAll"`
	QuantityBlocked *int   `json:"quantityBlocked,omitempty"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// AvailabilityResult là kết quả tính khả dụng cho một loại phòng trong một khoảng ngày
type AvailabilityResult struct {
	RoomTypeID         uint                `json:"roomTypeId"`
	TotalUnits         int                 `json:"totalUnits"`
	BookedUnits        int                 `json:"bookedUnits"`
	BlockedUnits       int                 `json:"blockedUnits"`
	LegacyBlockedUnits int                 `json:"legacyBlockedUnits"`
	AvailableUnits     int                 `json:"availableUnits"`
	IsAvailable        bool                `json:"isAvailable"`
	ContributingBlocks []ContributingBlock `json:"contributingBlocks,omitempty"`
}

// BlockReasons danh sách lý do của các block đang chặn, cho thông báo lỗi
func (r *AvailabilityResult) BlockReasons() []string {
	var reasons []string
	for _, b := range r.ContributingBlocks {
		reasons = append(reasons, b.Reason)
	}
	return reasons
}
