package models

import (
	"encoding/json"
	"fmt"
	"time"

	"hotelcore/constants"

	"github.com/lib/pq"
)

// DateRange khoảng ngày chặn legacy, dạng chuỗi "02/01/2006"
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type RoomType struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name"`
	PropertyTag   string          `json:"propertyTag" gorm:"index;size:20"`
	TotalUnits    int             `json:"totalUnits"` // Tổng số phòng của loại này
	PricePerNight float64         `json:"pricePerNight"`
	Description   string          `json:"description"`
	Avatar        string          `json:"avatar"`
	Img           json.RawMessage `json:"img" gorm:"type:json"`
	Amenities     pq.StringArray  `json:"amenities" gorm:"type:text[]"`
	// BlockedRanges là dữ liệu chặn kiểu cũ, deprecated nhưng engine vẫn phải tính.
	// Mỗi entry chiếm đúng 1 phòng trong khoảng ngày của nó.
	BlockedRanges json.RawMessage `json:"blockedRanges" gorm:"type:json"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// LegacyRanges parse danh sách blockedRanges, bỏ qua khi cột rỗng
func (r *RoomType) LegacyRanges() []DateRange {
	if len(r.BlockedRanges) == 0 {
		return nil
	}
	var ranges []DateRange
	if err := json.Unmarshal(r.BlockedRanges, &ranges); err != nil {
		return nil
	}
	return ranges
}

// SetLegacyRanges ghi lại danh sách blockedRanges
func (r *RoomType) SetLegacyRanges(ranges []DateRange) error {
	b, err := json.Marshal(ranges)
	if err != nil {
		return err
	}
	r.BlockedRanges = b
	return nil
}

func (r *RoomType) ValidateUnits() error {
	if r.TotalUnits < 0 {
		return fmt.Errorf("invalid totalUnits: %d, must be >= 0", r.TotalUnits)
	}
	return nil
}

func (r *RoomType) ValidateTag() error {
	if !constants.IsValidPropertyTag(r.PropertyTag) {
		return fmt.Errorf("invalid propertyTag: %q", r.PropertyTag)
	}
	return nil
}
