package controllers

import (
	"strconv"

	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/utils"

	"github.com/gin-gonic/gin"
)

func toBookingResponse(reservation *models.Reservation) dto.BookingResponse {
	return dto.BookingResponse{
		ID:                reservation.ID,
		BookingCode:       reservation.BookingCode,
		RoomTypeID:        reservation.RoomTypeID,
		RoomTypeName:      reservation.RoomType.Name,
		CheckInDate:       utils.FormatDate(reservation.CheckIn),
		CheckOutDate:      utils.FormatDate(reservation.CheckOut),
		Nights:            reservation.Nights(),
		Status:            reservation.Status,
		GuestName:         reservation.GuestName,
		GuestEmail:        reservation.GuestEmail,
		GuestPhone:        reservation.GuestPhone,
		Subtotal:          reservation.Subtotal,
		TaxVAT:            reservation.TaxVAT,
		TaxLodging:        reservation.TaxLodging,
		TotalPrice:        reservation.TotalPrice,
		InitialPayment:    reservation.InitialPayment,
		SecondPayment:     reservation.SecondPayment,
		SecondPaymentPaid: reservation.SecondPaymentPaid,
		PaymentStatus:     reservation.PaymentStatus,
		CancelReason:      reservation.CancelReason,
		CreatedAt:         reservation.CreatedAt,
		UpdatedAt:         reservation.UpdatedAt,
	}
}

// CreateBooking tạo đặt phòng mới
func CreateBooking(c *gin.Context) {
	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := bookingService().Create(c.Request.Context(), &request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, toBookingResponse(reservation))
}

// GetBookings liệt kê đặt phòng theo trang
func GetBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	var roomTypeID uint
	if roomTypeIDStr := c.Query("roomTypeId"); roomTypeIDStr != "" {
		if parsed, err := strconv.ParseUint(roomTypeIDStr, 10, 32); err == nil {
			roomTypeID = uint(parsed)
		}
	}

	reservations, total, err := bookingService().List(c.Query("status"), roomTypeID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(reservations))
	for i := range reservations {
		bookingResponses = append(bookingResponses, toBookingResponse(&reservations[i]))
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, int(total))
}

// GetDetailBooking lấy đặt phòng theo mã
func GetDetailBooking(c *gin.Context) {
	reservation, err := bookingService().GetByCode(c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBookingResponse(reservation))
}

// UpdateBooking đổi ngày, loại phòng hoặc thông tin khách
func UpdateBooking(c *gin.Context) {
	var request dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := bookingService().Update(&request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, toBookingResponse(reservation))
}

// CancelBooking hủy đặt phòng
func CancelBooking(c *gin.Context) {
	var request dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := bookingService().Cancel(&request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, toBookingResponse(reservation))
}

// MarkSecondPayment xác nhận đợt thanh toán thứ hai
func MarkSecondPayment(c *gin.Context) {
	var request dto.SecondPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reservation, err := bookingService().MarkSecondPaymentPaid(&request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBookingResponse(reservation))
}

// GetBookingStats số liệu tổng hợp đặt phòng trong một khoảng ngày
func GetBookingStats(c *gin.Context) {
	from, err := utils.ParseDate(c.Query("fromDate"))
	if err != nil {
		response.BadRequest(c, "Định dạng fromDate không hợp lệ")
		return
	}
	to, err := utils.ParseDate(c.Query("toDate"))
	if err != nil {
		response.BadRequest(c, "Định dạng toDate không hợp lệ")
		return
	}

	stats, err := bookingService().Stats(from, to)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, stats)
}
