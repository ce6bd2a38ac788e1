package controllers

import (
	"strconv"
	"time"

	"hotelcore/config"
	"hotelcore/constants"
	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/validator"

	"github.com/gin-gonic/gin"
)

func toRoomTypeResponse(roomType *models.RoomType) dto.RoomTypeResponse {
	return dto.RoomTypeResponse{
		ID:            roomType.ID,
		Name:          roomType.Name,
		PropertyTag:   roomType.PropertyTag,
		TotalUnits:    roomType.TotalUnits,
		PricePerNight: roomType.PricePerNight,
		Description:   roomType.Description,
		Avatar:        roomType.Avatar,
		Amenities:     roomType.Amenities,
		BlockedRanges: roomType.LegacyRanges(),
		CreatedAt:     roomType.CreatedAt,
		UpdatedAt:     roomType.UpdatedAt,
	}
}

// GetRoomTypes liệt kê loại phòng, cache toàn danh sách trên Redis
func GetRoomTypes(c *gin.Context) {
	page, limit := parsePagination(c)
	tagFilter := c.Query("propertyTag")

	var roomTypes []models.RoomType
	cacheHit := false

	if config.RedisClient != nil && tagFilter == "" {
		if err := services.GetFromRedis(config.Ctx, config.RedisClient, services.CacheKeyRoomTypes, &roomTypes); err == nil && len(roomTypes) > 0 {
			cacheHit = true
		}
	}

	if !cacheHit {
		tx := config.DB.Model(&models.RoomType{})
		if tagFilter != "" {
			tx = tx.Where("property_tag = ?", tagFilter)
		}
		if err := tx.Order("id").Find(&roomTypes).Error; err != nil {
			response.ServerError(c)
			return
		}
		if config.RedisClient != nil && tagFilter == "" {
			_ = services.SetToRedis(config.Ctx, config.RedisClient, services.CacheKeyRoomTypes, roomTypes, 10*time.Minute)
		}
	}

	total := len(roomTypes)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	roomTypeResponses := make([]dto.RoomTypeResponse, 0, end-start)
	for i := start; i < end; i++ {
		roomTypeResponses = append(roomTypeResponses, toRoomTypeResponse(&roomTypes[i]))
	}

	response.SuccessWithPagination(c, roomTypeResponses, page, limit, total)
}

// GetDetailRoomType lấy loại phòng theo ID
func GetDetailRoomType(c *gin.Context) {
	var roomType models.RoomType
	if err := config.DB.First(&roomType, c.Param("id")).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, toRoomTypeResponse(&roomType))
}

// CreateRoomType tạo loại phòng mới
func CreateRoomType(c *gin.Context) {
	var request dto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	roomType := models.RoomType{
		Name:          request.Name,
		PropertyTag:   request.PropertyTag,
		TotalUnits:    request.TotalUnits,
		PricePerNight: request.PricePerNight,
		Description:   request.Description,
		Avatar:        request.Avatar,
		Amenities:     request.Amenities,
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := config.DB.Create(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCache()
	response.Success(c, toRoomTypeResponse(&roomType))
}

// UpdateRoomType sửa loại phòng, kể cả dữ liệu blockedRanges kiểu cũ
func UpdateRoomType(c *gin.Context) {
	var request dto.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := config.DB.First(&roomType, request.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if request.Name != nil {
		roomType.Name = *request.Name
	}
	if request.PropertyTag != nil {
		roomType.PropertyTag = *request.PropertyTag
	}
	if request.TotalUnits != nil {
		roomType.TotalUnits = *request.TotalUnits
	}
	if request.PricePerNight != nil {
		roomType.PricePerNight = *request.PricePerNight
	}
	if request.Description != nil {
		roomType.Description = *request.Description
	}
	if request.Avatar != nil {
		roomType.Avatar = *request.Avatar
	}
	if request.Amenities != nil {
		roomType.Amenities = request.Amenities
	}
	if request.BlockedRanges != nil {
		if err := roomType.SetLegacyRanges(request.BlockedRanges); err != nil {
			response.BadRequest(c, "Định dạng blockedRanges không hợp lệ")
			return
		}
	}

	if err := validator.ValidateRoomType(&roomType); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := config.DB.Save(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCache()
	response.Success(c, toRoomTypeResponse(&roomType))
}

// DeleteRoomType xóa loại phòng. Còn đặt phòng active hay block active
// trỏ tới thì từ chối, phải dọn trước.
func DeleteRoomType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	var roomType models.RoomType
	if err := config.DB.First(&roomType, uint(id)).Error; err != nil {
		response.NotFound(c)
		return
	}

	var activeReservations int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("room_type_id = ? AND status = ?", roomType.ID, constants.ReservationStatusActive).
		Count(&activeReservations).Error; err != nil {
		response.ServerError(c)
		return
	}
	if activeReservations > 0 {
		response.ConflictWithData(c, "Loại phòng còn đặt phòng active, không thể xóa", gin.H{"activeReservations": activeReservations})
		return
	}

	var activeBlocks []models.Block
	if err := config.DB.Where("active = ?", true).Find(&activeBlocks).Error; err != nil {
		response.ServerError(c)
		return
	}
	for i := range activeBlocks {
		if activeBlocks[i].AppliesTo(roomType.ID) {
			response.ConflictWithData(c, "Loại phòng còn nằm trong block active, không thể xóa", gin.H{"blockId": activeBlocks[i].ID})
			return
		}
	}

	if err := config.DB.Delete(&roomType).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateCache()
	response.Success(c, nil)
}

// SearchRoomTypes tìm loại phòng theo tên gần đúng
func SearchRoomTypes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Thiếu từ khóa tìm kiếm")
		return
	}

	var roomTypes []models.RoomType
	if err := config.DB.Find(&roomTypes).Error; err != nil {
		response.ServerError(c)
		return
	}

	scored := services.SearchRoomTypes(query, roomTypes)
	results := make([]dto.RoomTypeSearchResult, 0, len(scored))
	for i := range scored {
		results = append(results, dto.RoomTypeSearchResult{
			RoomType: toRoomTypeResponse(&scored[i].RoomType),
			Score:    scored[i].Score,
		})
	}

	response.Success(c, results)
}
