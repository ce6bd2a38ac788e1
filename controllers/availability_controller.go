package controllers

import (
	"strconv"
	"time"

	"hotelcore/config"
	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailability trả breakdown khả dụng của một loại phòng trong một khoảng ngày
func GetAvailability(c *gin.Context) {
	roomTypeIDStr := c.Query("roomTypeId")
	roomTypeID, err := strconv.ParseUint(roomTypeIDStr, 10, 32)
	if err != nil || roomTypeID == 0 {
		response.BadRequest(c, "roomTypeId không hợp lệ")
		return
	}

	checkIn, checkOut, ok := parseDateRangeQuery(c)
	if !ok {
		return
	}

	// Đọc cache trước, miss thì tính rồi ghi lại
	cacheKey := services.CacheKeyAvailability(uint(roomTypeID), c.Query("checkIn"), c.Query("checkOut"))
	if config.RedisClient != nil {
		var cached dto.AvailabilityResult
		if err := services.GetFromRedis(config.Ctx, config.RedisClient, cacheKey, &cached); err == nil && cached.RoomTypeID != 0 {
			response.Success(c, cached)
			return
		}
	}

	result, err := availabilityService().Check(uint(roomTypeID), checkIn, checkOut)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if config.RedisClient != nil {
		_ = services.SetToRedis(config.Ctx, config.RedisClient, cacheKey, result, 5*time.Minute)
	}

	response.Success(c, result)
}

// GetAllAvailability trả khả dụng của mọi loại phòng, lọc theo propertyTag nếu có
func GetAllAvailability(c *gin.Context) {
	checkIn, checkOut, ok := parseDateRangeQuery(c)
	if !ok {
		return
	}

	results, err := availabilityService().CheckAll(c.Query("propertyTag"), checkIn, checkOut)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, results)
}

func parseDateRangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	checkIn, err := utils.ParseDate(c.Query("checkIn"))
	if err != nil {
		response.BadRequest(c, "Định dạng checkIn không hợp lệ")
		return time.Time{}, time.Time{}, false
	}
	checkOut, err := utils.ParseDate(c.Query("checkOut"))
	if err != nil {
		response.BadRequest(c, "Định dạng checkOut không hợp lệ")
		return time.Time{}, time.Time{}, false
	}
	if !checkOut.After(checkIn) {
		response.BadRequest(c, "checkOut phải sau checkIn")
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}
