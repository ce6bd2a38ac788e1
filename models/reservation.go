package models

import (
	"fmt"
	"math/rand"
	"time"

	"hotelcore/constants"
	apperrors "hotelcore/errors"

	"gorm.io/gorm"
)

type Reservation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BookingCode string    `json:"bookingCode" gorm:"unique;size:20"` // Mã đặt phòng duy nhất, dễ đọc
	RoomTypeID  uint      `json:"roomTypeId" gorm:"index:idx_resv_lookup"`
	RoomType    RoomType  `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	CheckIn     time.Time `json:"checkIn" gorm:"index:idx_resv_lookup"`
	CheckOut    time.Time `json:"checkOut" gorm:"index:idx_resv_lookup"` // Khoảng nửa-mở [checkIn, checkOut)
	Status      string    `json:"status" gorm:"index:idx_resv_lookup;size:16"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail,omitempty"`
	GuestPhone string `json:"guestPhone,omitempty"`

	Subtotal   float64 `json:"subtotal"`
	TaxVAT     float64 `json:"taxVat"`     // Thuế VAT 16%
	TaxLodging float64 `json:"taxLodging"` // Thuế lưu trú 4%
	TotalPrice float64 `json:"totalPrice"`

	InitialPayment    float64 `json:"initialPayment"`
	SecondPayment     float64 `json:"secondPayment"`
	SecondPaymentPaid bool    `json:"secondPaymentPaid"`
	PaymentStatus     string  `json:"paymentStatus" gorm:"size:16"`
	PaymentRef        string  `json:"paymentRef,omitempty"`

	CancelReason string    `json:"cancelReason,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nights số đêm của đặt phòng
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// IsActive đặt phòng còn chiếm phòng hay không
func (r *Reservation) IsActive() bool {
	return r.Status == constants.ReservationStatusActive
}

// BeforeCreate sinh BookingCode dạng năm + hậu tố ngẫu nhiên nếu chưa có.
// Trùng mã thì trả lỗi để service thử lại.
func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.BookingCode == "" {
		r.BookingCode = fmt.Sprintf("HB%d-%06d", time.Now().Year(), rand.Intn(1000000))
	}

	var count int64
	if err := tx.Model(&Reservation{}).Where("booking_code = ?", r.BookingCode).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrBookingCodeTaken
	}
	return nil
}
