package services

import (
	"errors"
	"fmt"
	"net/smtp"

	"hotelcore/config"
	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetUserByEmail lấy operator theo email
func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("không tìm thấy người dùng với email %s", email)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

// CreateUser tạo tài khoản vận hành mới với mật khẩu đã băm
func CreateUser(name, email, password string, role int) (models.User, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Status:   constants.UserStatusActive,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "Email đã được sử dụng", err)
	}
	return user, nil
}

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword so khớp mật khẩu với hash đã lưu
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Email hoặc mật khẩu không đúng", err)
	}
	return nil
}

// SendBookingEmail gửi voucher xác nhận đặt phòng cho khách.
// Gọi fire-and-forget sau khi ghi xong, lỗi gửi mail không làm hỏng booking.
func SendBookingEmail(email string, bookingCode string, roomTypeName string, totalPrice float64, checkInDate string, checkOutDate string) error {
	from := config.GetEnv("SMTP_FROM")
	password := config.GetEnv("SMTP_PASSWORD")
	host := config.GetEnv("SMTP_HOST")
	port := config.GetEnv("SMTP_PORT")
	if host == "" {
		return nil
	}

	to := []string{email}
	subject := "Subject: Đặt phòng thành công\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Đặt phòng thành công</title>
	</head>
	<body>
		<p>Xin chào,</p>
		<p>Chúc mừng! Bạn đã đặt phòng thành công.</p>
		<p>Thông tin đặt phòng của bạn như sau:</p>
		<ul>
			<li>Mã đặt phòng: <strong>%s</strong></li>
			<li>Loại phòng: <strong>%s</strong></li>
			<li>Ngày nhận phòng: <strong>%s</strong></li>
			<li>Ngày trả phòng: <strong>%s</strong></li>
			<li>Tổng giá trị: <strong>%.2f</strong></li>
		</ul>
		<p>Vui lòng xuất trình mã đặt phòng khi nhận phòng.</p>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, bookingCode, roomTypeName, checkInDate, checkOutDate, totalPrice)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

// SendCancellationEmail báo cho khách khi đặt phòng bị hủy
func SendCancellationEmail(email string, bookingCode string, reason string) error {
	from := config.GetEnv("SMTP_FROM")
	password := config.GetEnv("SMTP_PASSWORD")
	host := config.GetEnv("SMTP_HOST")
	port := config.GetEnv("SMTP_PORT")
	if host == "" {
		return nil
	}

	to := []string{email}
	subject := "Subject: Đặt phòng đã bị hủy\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Đặt phòng đã bị hủy</title>
	</head>
	<body>
		<p>Xin chào,</p>
		<p>Đặt phòng <strong>%s</strong> của bạn đã được hủy.</p>
		<p>Lý do: %s</p>
		<p>Nếu bạn không yêu cầu hủy, vui lòng liên hệ với chúng tôi ngay.</p>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, bookingCode, reason)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}
