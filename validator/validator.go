package validator

import (
	"regexp"
	"time"

	"hotelcore/constants"
	"hotelcore/errors"
	"hotelcore/models"
	"hotelcore/utils"
)

// ValidateRoomType validate thông tin loại phòng
func ValidateRoomType(roomType *models.RoomType) error {
	if roomType.Name == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên loại phòng không được để trống", nil)
	}

	if err := roomType.ValidateTag(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Nhóm cơ sở không hợp lệ: "+roomType.PropertyTag, err)
	}

	if err := roomType.ValidateUnits(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Số lượng phòng không được âm", err)
	}

	if roomType.PricePerNight < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Giá phòng không được âm", nil)
	}

	return nil
}

// ValidateDateRange parse và kiểm tra một khoảng ngày nửa hở.
// startDate phải nhỏ hơn endDate (một đêm trở lên).
func ValidateDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Định dạng ngày bắt đầu không hợp lệ", err)
	}

	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Định dạng ngày kết thúc không hợp lệ", err)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	return start, end, nil
}

// ValidateReservation validate thông tin đặt phòng trước khi tạo
func ValidateReservation(reservation *models.Reservation) error {
	if reservation.RoomTypeID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID loại phòng không được để trống", nil)
	}

	if !reservation.CheckOut.After(reservation.CheckIn) {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	if reservation.GuestEmail != "" && !isValidEmail(reservation.GuestEmail) {
		return errors.NewAppError(errors.ErrCodeValidation, "Email khách không hợp lệ", nil)
	}

	if reservation.GuestPhone != "" && !isValidPhone(reservation.GuestPhone) {
		return errors.NewAppError(errors.ErrCodeValidation, "Số điện thoại khách không hợp lệ", nil)
	}

	if reservation.TotalPrice < 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Tổng tiền không được âm", nil)
	}

	return nil
}

// ValidateBlock validate thông tin block.
// blockAll và quantity loại trừ lẫn nhau: blockAll=true thì quantity phải nil,
// blockAll=false thì quantity phải có và dương.
func ValidateBlock(block *models.Block) error {
	if err := block.ValidateStruct(); err != nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Thiếu trường bắt buộc của block", err)
	}

	if !constants.IsValidBlockScope(block.Scope) {
		return errors.NewAppError(errors.ErrCodeValidation, "Phạm vi block không hợp lệ: "+block.Scope, nil)
	}

	if block.IsSpecific() && block.RoomTypeID == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Block theo loại phòng phải có ID loại phòng", nil)
	}

	if !block.IsSpecific() && block.RoomTypeID != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "ID loại phòng chỉ dùng cho block phạm vi specific", nil)
	}

	if !block.EndDate.After(block.StartDate) {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	if block.BlockAll && block.QuantityBlocked != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Block toàn bộ không được kèm số lượng", nil)
	}

	if !block.BlockAll {
		if block.QuantityBlocked == nil {
			return errors.NewAppError(errors.ErrCodeRequiredField, "Block theo số lượng phải có số lượng", nil)
		}
		if *block.QuantityBlocked <= 0 {
			return errors.NewAppError(errors.ErrCodeValidation, "Số lượng block phải lớn hơn 0", nil)
		}
	}

	if block.Reason == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Lý do block không được để trống", nil)
	}

	return nil
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeValidation, "Email không hợp lệ", nil)
	}
	return nil
}

// ValidatePassword kiểm tra mật khẩu hợp lệ
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 8 ký tự", nil)
	}
	return nil
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidPhone kiểm tra số điện thoại hợp lệ
func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return phoneRegex.MatchString(phone)
}
