package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Availability / booking errors
	ErrCodeInvalidRange         ErrorCode = "INVALID_RANGE"
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeUnavailable          ErrorCode = "UNAVAILABLE"
	ErrCodeInsufficientCapacity ErrorCode = "INSUFFICIENT_CAPACITY"
	ErrCodePaymentNotConfirmed  ErrorCode = "PAYMENT_NOT_CONFIRMED"
	ErrCodeAlreadyPaid          ErrorCode = "ALREADY_PAID"
	ErrCodeConflict             ErrorCode = "CONFLICT"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// UnavailableError là kết quả nghiệp vụ: phòng không đủ chỗ trong khoảng ngày yêu cầu.
// Mang theo breakdown đầy đủ để tầng HTTP trả về thông báo chính xác.
type UnavailableError struct {
	RoomTypeID     uint     `json:"roomTypeId"`
	TotalUnits     int      `json:"totalUnits"`
	BookedUnits    int      `json:"bookedUnits"`
	BlockedUnits   int      `json:"blockedUnits"`
	AvailableUnits int      `json:"availableUnits"`
	BlockReasons   []string `json:"blockReasons,omitempty"`
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("room type %d unavailable: %d/%d units free (booked=%d, blocked=%d)",
		e.RoomTypeID, e.AvailableUnits, e.TotalUnits, e.BookedUnits, e.BlockedUnits)
}

// InsufficientCapacityError là kết quả nghiệp vụ: block vượt quá sức chứa còn lại.
// RoomType là loại phòng đầu tiên không đạt kiểm tra.
type InsufficientCapacityError struct {
	RoomTypeID   uint   `json:"roomTypeId"`
	RoomTypeName string `json:"roomTypeName"`
	Requested    int    `json:"requested"`
	Remaining    int    `json:"remaining"`
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity for room type %q: requested %d, remaining %d",
		e.RoomTypeName, e.Requested, e.Remaining)
}

var (
	// Booking errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingCodeTaken    = errors.New("booking code already exists")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrAlreadyPaid         = errors.New("second payment already marked as paid")

	// Room type errors
	ErrRoomTypeNotFound = errors.New("room type not found")

	// Block errors
	ErrBlockNotFound = errors.New("block not found")
)
