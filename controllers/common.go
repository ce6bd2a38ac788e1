package controllers

import (
	stderrors "errors"
	"strconv"

	"hotelcore/config"
	"hotelcore/errors"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/services/notification"

	"github.com/gin-gonic/gin"
)

var (
	notifier        notification.Service
	paymentProvider services.PaymentProvider
)

// SetNotifier gắn kênh broadcast realtime cho các controller
func SetNotifier(n notification.Service) {
	notifier = n
}

// SetPaymentProvider gắn cổng thanh toán, test có thể thay bằng provider giả
func SetPaymentProvider(p services.PaymentProvider) {
	paymentProvider = p
}

func bookingService() *services.BookingService {
	p := paymentProvider
	if p == nil {
		p = services.NewHTTPPaymentProvider()
	}
	return services.NewBookingService(config.DB, p, notifier)
}

func blockService() *services.BlockService {
	return services.NewBlockService(config.DB)
}

func availabilityService() *services.AvailabilityService {
	return services.NewAvailabilityService(config.DB)
}

// handleServiceError dịch lỗi từ tầng service sang HTTP response.
// Kết quả nghiệp vụ (hết phòng, thiếu sức chứa) trả 4xx kèm breakdown,
// lỗi hạ tầng trả 500.
func handleServiceError(c *gin.Context, err error) {
	var unavailable *errors.UnavailableError
	if stderrors.As(err, &unavailable) {
		response.ConflictWithData(c, "Phòng không còn trống trong khoảng ngày yêu cầu", unavailable)
		return
	}

	var insufficient *errors.InsufficientCapacityError
	if stderrors.As(err, &insufficient) {
		response.ConflictWithData(c, "Không đủ sức chứa cho loại phòng "+insufficient.RoomTypeName, insufficient)
		return
	}

	if appErr := errors.GetAppError(err); appErr != nil {
		switch appErr.Code {
		case errors.ErrCodeInvalidRange, errors.ErrCodeValidation,
			errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat,
			errors.ErrCodePaymentNotConfirmed, errors.ErrCodeAlreadyPaid:
			response.BadRequest(c, appErr.Message)
		case errors.ErrCodeNotFound:
			response.NotFound(c)
		case errors.ErrCodeConflict, errors.ErrCodeDBDuplicate:
			response.ConflictWithData(c, appErr.Message, nil)
		case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
			response.Unauthorized(c)
		default:
			response.ServerError(c)
		}
		return
	}

	response.ServerError(c)
}

// parsePagination đọc page/limit từ query, mặc định page=1 limit=10
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	limit := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage > 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	return page, limit
}

// invalidateCache xóa cache inventory sau khi ghi, lỗi redis chỉ ghi log ngầm
func invalidateCache() {
	if config.RedisClient == nil {
		return
	}
	_ = services.InvalidateInventoryCache(config.Ctx, config.RedisClient)
}
