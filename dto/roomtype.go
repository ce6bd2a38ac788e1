package dto

import (
	"time"

	"hotelcore/models"
)

// CreateRoomTypeRequest request tạo loại phòng
type CreateRoomTypeRequest struct {
	Name          string   `json:"name" binding:"required"`
	PropertyTag   string   `json:"propertyTag" binding:"required"`
	TotalUnits    int      `json:"totalUnits"`
	PricePerNight float64  `json:"pricePerNight"`
	Description   string   `json:"description"`
	Avatar        string   `json:"avatar"`
	Amenities     []string `json:"amenities,omitempty"`
}

// UpdateRoomTypeRequest request sửa loại phòng; trường nil giữ nguyên
type UpdateRoomTypeRequest struct {
	ID            uint               `json:"id" binding:"required"`
	Name          *string            `json:"name,omitempty"`
	PropertyTag   *string            `json:"propertyTag,omitempty"`
	TotalUnits    *int               `json:"totalUnits,omitempty"`
	PricePerNight *float64           `json:"pricePerNight,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Avatar        *string            `json:"avatar,omitempty"`
	Amenities     []string           `json:"amenities,omitempty"`
	BlockedRanges []models.DateRange `json:"blockedRanges,omitempty"` // Dữ liệu legacy, vẫn nhận để tương thích
}

// RoomTypeResponse DTO trả về cho một loại phòng
type RoomTypeResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	PropertyTag   string             `json:"propertyTag"`
	TotalUnits    int                `json:"totalUnits"`
	PricePerNight float64            `json:"pricePerNight"`
	Description   string             `json:"description"`
	Avatar        string             `json:"avatar"`
	Amenities     []string           `json:"amenities,omitempty"`
	BlockedRanges []models.DateRange `json:"blockedRanges,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// RoomTypeSearchResult một kết quả tìm kiếm mờ theo tên
type RoomTypeSearchResult struct {
	RoomType RoomTypeResponse `json:"roomType"`
	Score    int              `json:"score"`
}
