package dto

import "time"

// CreateBlockRequest request tạo block chặn phòng
type CreateBlockRequest struct {
	Scope      string `json:"scope" binding:"required"` // specific | main-house | boutique | all
	RoomTypeID *uint  `json:"roomTypeId,omitempty"`     // Bắt buộc khi scope = specific
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	BlockAll   bool   `json:"blockAll"`
	Quantity   *int   `json:"quantity,omitempty"`
	Reason     string `json:"reason" binding:"required"`
}

// UpdateBlockRequest request sửa block; trường nil giữ nguyên giá trị cũ
type UpdateBlockRequest struct {
	ID         uint    `json:"id" binding:"required"`
	Scope      *string `json:"scope,omitempty"`
	RoomTypeID *uint   `json:"roomTypeId,omitempty"`
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
	BlockAll   *bool   `json:"blockAll,omitempty"`
	Quantity   *int    `json:"quantity,omitempty"`
	Reason     *string `json:"reason,omitempty"`
}

// BlockResponse DTO trả về cho một block
type BlockResponse struct {
	ID                uint      `json:"id"`
	Scope             string    `json:"scope"`
	RoomTypeID        *uint     `json:"roomTypeId,omitempty"`
	AffectedRoomTypes []uint    `json:"affectedRoomTypes"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	BlockAll          bool      `json:"blockAll"`
	QuantityBlocked   *int      `json:"quantityBlocked,omitempty"`
	Reason            string    `json:"reason"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
