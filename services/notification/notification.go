package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// BookingMessageBuilder dựng thông báo realtime cho dashboard khi có đặt phòng mới
type BookingMessageBuilder struct {
	bookingCode  string
	roomTypeName string
	checkIn      string
	checkOut     string
}

func NewBookingMessageBuilder(bookingCode, roomTypeName, checkIn, checkOut string) *BookingMessageBuilder {
	return &BookingMessageBuilder{
		bookingCode:  bookingCode,
		roomTypeName: roomTypeName,
		checkIn:      checkIn,
		checkOut:     checkOut,
	}
}

func (b *BookingMessageBuilder) Build() string {
	return fmt.Sprintf("🔔 Đặt phòng mới %s: %s (%s → %s)", b.bookingCode, b.roomTypeName, b.checkIn, b.checkOut)
}

// CancelMessageBuilder dựng thông báo khi một đặt phòng bị hủy
type CancelMessageBuilder struct {
	bookingCode string
	reason      string
}

func NewCancelMessageBuilder(bookingCode, reason string) *CancelMessageBuilder {
	return &CancelMessageBuilder{bookingCode: bookingCode, reason: reason}
}

func (b *CancelMessageBuilder) Build() string {
	if b.reason == "" {
		return fmt.Sprintf("❌ Đặt phòng %s đã bị hủy", b.bookingCode)
	}
	return fmt.Sprintf("❌ Đặt phòng %s đã bị hủy: %s", b.bookingCode, b.reason)
}
