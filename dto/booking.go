package dto

import "time"

// CreateBookingRequest request tạo đặt phòng.
// Các trường pricing là optional: nếu client đã tính sẵn thì dùng nguyên giá trị đó,
// không thì backend tự tính từ PricePerNight của loại phòng.
type CreateBookingRequest struct {
	RoomTypeID   uint   `json:"roomTypeId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail,omitempty"`
	GuestPhone string `json:"guestPhone,omitempty"`

	PricePerNight *float64 `json:"pricePerNight,omitempty"`
	Subtotal      *float64 `json:"subtotal,omitempty"`
	TaxVAT        *float64 `json:"taxVat,omitempty"`
	TaxLodging    *float64 `json:"taxLodging,omitempty"`
	TotalPrice    *float64 `json:"totalPrice,omitempty"`

	// PaymentRef là mã tham chiếu thanh toán đã capture; rỗng = đặt offline/nội bộ
	PaymentRef string `json:"paymentRef,omitempty"`
}

// UpdateBookingRequest request sửa đặt phòng; trường nil giữ nguyên giá trị cũ
type UpdateBookingRequest struct {
	BookingCode  string  `json:"bookingCode" binding:"required"`
	RoomTypeID   *uint   `json:"roomTypeId,omitempty"`
	CheckInDate  *string `json:"checkInDate,omitempty"`
	CheckOutDate *string `json:"checkOutDate,omitempty"`
	GuestName    *string `json:"guestName,omitempty"`
	GuestEmail   *string `json:"guestEmail,omitempty"`
	GuestPhone   *string `json:"guestPhone,omitempty"`
}

// CancelBookingRequest request hủy đặt phòng
type CancelBookingRequest struct {
	BookingCode string `json:"bookingCode" binding:"required"`
	Reason      string `json:"reason,omitempty"`
}

// SecondPaymentRequest request xác nhận đợt thanh toán thứ hai
type SecondPaymentRequest struct {
	BookingCode string `json:"bookingCode" binding:"required"`
}

// BookingResponse DTO trả về cho một đặt phòng
type BookingResponse struct {
	ID                uint      `json:"id"`
	BookingCode       string    `json:"bookingCode"`
	RoomTypeID        uint      `json:"roomTypeId"`
	RoomTypeName      string    `json:"roomTypeName"`
	CheckInDate       string    `json:"checkInDate"`
	CheckOutDate      string    `json:"checkOutDate"`
	Nights            int       `json:"nights"`
	Status            string    `json:"status"`
	GuestName         string    `json:"guestName"`
	GuestEmail        string    `json:"guestEmail,omitempty"`
	GuestPhone        string    `json:"guestPhone,omitempty"`
	Subtotal          float64   `json:"subtotal"`
	TaxVAT            float64   `json:"taxVat"`
	TaxLodging        float64   `json:"taxLodging"`
	TotalPrice        float64   `json:"totalPrice"`
	InitialPayment    float64   `json:"initialPayment"`
	SecondPayment     float64   `json:"secondPayment"`
	SecondPaymentPaid bool      `json:"secondPaymentPaid"`
	PaymentStatus     string    `json:"paymentStatus"`
	CancelReason      string    `json:"cancelReason,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MonthRevenue doanh thu gộp theo tháng
type MonthRevenue struct {
	Month   string  `json:"month"` // "2006-01"
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// BookingStatsResponse số liệu tổng hợp đặt phòng trong một khoảng ngày
type BookingStatsResponse struct {
	TotalBookings     int            `json:"totalBookings"`
	ActiveBookings    int            `json:"activeBookings"`
	CancelledBookings int            `json:"cancelledBookings"`
	Revenue           float64        `json:"revenue"`
	TaxVATTotal       float64        `json:"taxVatTotal"`
	TaxLodgingTotal   float64        `json:"taxLodgingTotal"`
	Monthly           []MonthRevenue `json:"monthly"`
}
