package models

import (
	"encoding/json"
	"time"

	"hotelcore/constants"

	"github.com/go-playground/validator/v10"
)

// Block là khoảng thời gian chặn phòng do vận hành tạo (bảo trì, sự kiện, đóng cửa).
// AffectedRoomTypes là snapshot chụp tại thời điểm tạo/sửa, không phải join động:
// thay đổi membership của RoomType về sau không làm block cũ đổi nghĩa.
type Block struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Scope             string          `json:"scope" gorm:"index;size:20" validate:"required"`
	RoomTypeID        *uint           `json:"roomTypeId,omitempty" gorm:"index"` // Chỉ dùng khi scope = specific
	AffectedRoomTypes json.RawMessage `json:"affectedRoomTypes" gorm:"type:json"`
	StartDate         time.Time       `json:"startDate" gorm:"index"`
	EndDate           time.Time       `json:"endDate" gorm:"index"` // Khoảng nửa-mở [startDate, endDate)
	BlockAll          bool            `json:"blockAll"`
	QuantityBlocked   *int            `json:"quantityBlocked,omitempty"`
	Reason            string          `json:"reason" validate:"required"`
	Active            bool            `json:"active" gorm:"index"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

var blockValidate = validator.New()

// ValidateStruct chạy các tag validate cơ bản
func (b *Block) ValidateStruct() error {
	return blockValidate.Struct(b)
}

// AffectedIDs parse snapshot danh sách room type bị ảnh hưởng
func (b *Block) AffectedIDs() []uint {
	if len(b.AffectedRoomTypes) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(b.AffectedRoomTypes, &ids); err != nil {
		return nil
	}
	return ids
}

// SetAffectedIDs ghi snapshot danh sách room type bị ảnh hưởng
func (b *Block) SetAffectedIDs(ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	b.AffectedRoomTypes = data
	return nil
}

// AppliesTo block này có chạm tới room type không (theo snapshot)
func (b *Block) AppliesTo(roomTypeID uint) bool {
	for _, id := range b.AffectedIDs() {
		if id == roomTypeID {
			return true
		}
	}
	return false
}

// UnitsBlocked số phòng block này chiếm của một room type
func (b *Block) UnitsBlocked(totalUnits int) int {
	if b.BlockAll {
		return totalUnits
	}
	if b.QuantityBlocked != nil {
		return *b.QuantityBlocked
	}
	return 0
}

// SetBlockAll bật/tắt blockAll; blockAll và quantityBlocked loại trừ lẫn nhau
func (b *Block) SetBlockAll(blockAll bool) {
	b.BlockAll = blockAll
	if blockAll {
		b.QuantityBlocked = nil
	}
}

// SetQuantity đặt số phòng chặn và tắt blockAll
func (b *Block) SetQuantity(quantity int) {
	b.BlockAll = false
	b.QuantityBlocked = &quantity
}

// IsSpecific scope có phải một room type đơn lẻ không
func (b *Block) IsSpecific() bool {
	return b.Scope == constants.BlockScopeSpecific
}
