package services

import (
	"context"
	"errors"
	"math"
	"time"

	"hotelcore/constants"
	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/services/notification"
	"hotelcore/utils"
	"hotelcore/validator"

	"gorm.io/gorm"
)

const bookingCodeRetries = 5

// BookingService xử lý vòng đời đặt phòng: tạo, sửa, hủy, thanh toán đợt hai.
// Mọi thao tác chiếm/nhả phòng đều giữ mutex của room type liên quan và
// kiểm tra lại khả dụng trong transaction trước khi ghi.
type BookingService struct {
	db       *gorm.DB
	payments PaymentProvider
	notifier notification.Service
	log      logger.Logger
}

// NewBookingService tạo instance mới của BookingService
func NewBookingService(db *gorm.DB, payments PaymentProvider, notifier notification.Service) *BookingService {
	return &BookingService{
		db:       db,
		payments: payments,
		notifier: notifier,
		log:      logger.NewDefaultLogger(logger.InfoLevel).WithPrefix("[booking]"),
	}
}

// Create tạo đặt phòng mới.
// Giá client đã tính sẵn thì dùng nguyên, thiếu trường nào tự tính trường đó.
func (s *BookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*models.Reservation, error) {
	checkIn, err := utils.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày nhận phòng không hợp lệ", err)
	}
	checkOut, err := utils.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày trả phòng không hợp lệ", err)
	}
	if !checkOut.After(checkIn) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	var roomType models.RoomType
	if err := s.db.First(&roomType, req.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy loại phòng", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy thông tin loại phòng", err)
	}

	// Hết phòng thì trả breakdown ngay, không cần gọi sang cổng thanh toán.
	// Check này chưa giữ khóa nên sẽ kiểm lại sau khi khóa.
	avail, err := NewAvailabilityService(s.db).Check(roomType.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !avail.IsAvailable {
		return nil, unavailableError(avail)
	}

	// Xác minh thanh toán trước khi chiếm phòng
	paid := false
	if req.PaymentRef != "" {
		confirmed, err := s.payments.Verify(ctx, req.PaymentRef)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Không thể xác minh thanh toán", err)
		}
		if !confirmed {
			return nil, apperrors.NewAppError(apperrors.ErrCodePaymentNotConfirmed, "Thanh toán chưa được xác nhận", apperrors.ErrPaymentNotConfirmed)
		}
		paid = true
	}

	reservation := &models.Reservation{
		RoomTypeID: roomType.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     constants.ReservationStatusActive,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		PaymentRef: req.PaymentRef,
	}
	s.applyPricing(reservation, &roomType, req)
	s.applyPaymentSplit(reservation, paid)

	if err := validator.ValidateReservation(reservation); err != nil {
		return nil, err
	}

	unlock := LockRoomType(roomType.ID)
	defer unlock()

	avail, err = NewAvailabilityService(s.db).Check(roomType.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !avail.IsAvailable {
		return nil, unavailableError(avail)
	}

	if err := s.persistNew(reservation, checkIn, checkOut); err != nil {
		return nil, err
	}

	s.dispatchCreated(reservation, &roomType)
	return reservation, nil
}

// persistNew ghi reservation trong transaction có kiểm tra lại khả dụng,
// thử lại khi đụng mã đặt phòng trùng.
func (s *BookingService) persistNew(reservation *models.Reservation, checkIn, checkOut time.Time) error {
	for attempt := 0; attempt < bookingCodeRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			recheck, err := NewAvailabilityService(tx).Check(reservation.RoomTypeID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if !recheck.IsAvailable {
				return apperrors.NewAppError(apperrors.ErrCodeConflict, "Phòng vừa được đặt bởi yêu cầu khác", nil)
			}
			return tx.Create(reservation).Error
		})
		if errors.Is(err, apperrors.ErrBookingCodeTaken) {
			reservation.BookingCode = ""
			reservation.ID = 0
			continue
		}
		return wrapDBError(err, "Lỗi khi tạo đặt phòng")
	}
	return apperrors.NewAppError(apperrors.ErrCodeDBError, "Không thể sinh mã đặt phòng duy nhất", apperrors.ErrBookingCodeTaken)
}

// applyPricing điền các trường giá: trường nào client gửi thì giữ nguyên,
// trường nào thiếu thì tính từ giá phòng và thuế suất.
func (s *BookingService) applyPricing(reservation *models.Reservation, roomType *models.RoomType, req *dto.CreateBookingRequest) {
	nights := float64(utils.Nights(reservation.CheckIn, reservation.CheckOut))

	pricePerNight := roomType.PricePerNight
	if req.PricePerNight != nil {
		pricePerNight = *req.PricePerNight
	}

	if req.Subtotal != nil {
		reservation.Subtotal = *req.Subtotal
	} else {
		reservation.Subtotal = pricePerNight * nights
	}

	if req.TaxVAT != nil {
		reservation.TaxVAT = *req.TaxVAT
	} else {
		reservation.TaxVAT = reservation.Subtotal * constants.TaxRateVAT
	}

	if req.TaxLodging != nil {
		reservation.TaxLodging = *req.TaxLodging
	} else {
		reservation.TaxLodging = reservation.Subtotal * constants.TaxRateLodging
	}

	if req.TotalPrice != nil {
		reservation.TotalPrice = *req.TotalPrice
	} else {
		reservation.TotalPrice = reservation.Subtotal + reservation.TaxVAT + reservation.TaxLodging
	}
}

// applyPaymentSplit chia tiền theo số đêm: 1 đêm trả hết một lần,
// nhiều đêm chia đôi 50/50.
func (s *BookingService) applyPaymentSplit(reservation *models.Reservation, paid bool) {
	if utils.Nights(reservation.CheckIn, reservation.CheckOut) == 1 {
		reservation.InitialPayment = reservation.TotalPrice
		reservation.SecondPayment = 0
	} else {
		half := math.Round(reservation.TotalPrice*50) / 100
		reservation.InitialPayment = half
		reservation.SecondPayment = reservation.TotalPrice - half
	}

	switch {
	case !paid:
		reservation.PaymentStatus = constants.PaymentStatusPending
	case reservation.SecondPayment == 0:
		reservation.PaymentStatus = constants.PaymentStatusCompleted
	default:
		reservation.PaymentStatus = constants.PaymentStatusPartial
	}
}

// GetByCode lấy đặt phòng theo mã
func (s *BookingService) GetByCode(bookingCode string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Preload("RoomType").Where("booking_code = ?", bookingCode).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy đặt phòng", apperrors.ErrBookingNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy đặt phòng", err)
	}
	return &reservation, nil
}

// List liệt kê đặt phòng theo trang, lọc theo trạng thái và loại phòng nếu có
func (s *BookingService) List(status string, roomTypeID uint, page, limit int) ([]models.Reservation, int64, error) {
	query := s.db.Model(&models.Reservation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if roomTypeID != 0 {
		query = query.Where("room_type_id = ?", roomTypeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đếm đặt phòng", err)
	}

	var reservations []models.Reservation
	err := query.Preload("RoomType").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách đặt phòng", err)
	}
	return reservations, total, nil
}

// Update đổi ngày, loại phòng hoặc thông tin khách của một đặt phòng active.
// Đổi ngày/loại phòng sẽ kiểm tra lại khả dụng (bỏ qua chính nó) và tính lại giá.
func (s *BookingService) Update(req *dto.UpdateBookingRequest) (*models.Reservation, error) {
	reservation, err := s.GetByCode(req.BookingCode)
	if err != nil {
		return nil, err
	}

	if req.GuestName != nil {
		reservation.GuestName = *req.GuestName
	}
	if req.GuestEmail != nil {
		reservation.GuestEmail = *req.GuestEmail
	}
	if req.GuestPhone != nil {
		reservation.GuestPhone = *req.GuestPhone
	}

	newRoomTypeID := reservation.RoomTypeID
	if req.RoomTypeID != nil {
		newRoomTypeID = *req.RoomTypeID
	}
	newCheckIn := reservation.CheckIn
	if req.CheckInDate != nil {
		newCheckIn, err = utils.ParseDate(*req.CheckInDate)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày nhận phòng không hợp lệ", err)
		}
	}
	newCheckOut := reservation.CheckOut
	if req.CheckOutDate != nil {
		newCheckOut, err = utils.ParseDate(*req.CheckOutDate)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày trả phòng không hợp lệ", err)
		}
	}
	if !newCheckOut.After(newCheckIn) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	inventoryChanged := newRoomTypeID != reservation.RoomTypeID ||
		!newCheckIn.Equal(reservation.CheckIn) ||
		!newCheckOut.Equal(reservation.CheckOut)

	if !inventoryChanged {
		if err := s.db.Save(reservation).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi cập nhật đặt phòng", err)
		}
		return reservation, nil
	}

	var roomType models.RoomType
	if err := s.db.First(&roomType, newRoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy loại phòng", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy thông tin loại phòng", err)
	}

	unlock := LockRoomTypes([]uint{reservation.RoomTypeID, newRoomTypeID})
	defer unlock()

	avail, err := NewAvailabilityService(s.db).CheckExcluding(newRoomTypeID, newCheckIn, newCheckOut, reservation.ID)
	if err != nil {
		return nil, err
	}
	if !avail.IsAvailable {
		return nil, unavailableError(avail)
	}

	reservation.RoomTypeID = newRoomTypeID
	reservation.RoomType = roomType
	reservation.CheckIn = newCheckIn
	reservation.CheckOut = newCheckOut

	// Khoảng ở mới thì giá mới: tính lại từ giá phòng hiện tại, chia lại đợt thanh toán
	s.applyPricing(reservation, &roomType, &dto.CreateBookingRequest{})
	s.applyPaymentSplit(reservation, reservation.PaymentStatus != constants.PaymentStatusPending)
	if reservation.SecondPaymentPaid {
		reservation.PaymentStatus = constants.PaymentStatusCompleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		recheck, err := NewAvailabilityService(tx).CheckExcluding(newRoomTypeID, newCheckIn, newCheckOut, reservation.ID)
		if err != nil {
			return err
		}
		if !recheck.IsAvailable {
			return apperrors.NewAppError(apperrors.ErrCodeConflict, "Phòng vừa được đặt bởi yêu cầu khác", nil)
		}
		return tx.Save(reservation).Error
	})
	if err != nil {
		return nil, wrapDBError(err, "Lỗi khi cập nhật đặt phòng")
	}
	return reservation, nil
}

// Cancel hủy đặt phòng và nhả phòng ngay lập tức.
// Hủy một đặt phòng đã hủy sẽ ghi đè lý do cũ, không báo lỗi.
func (s *BookingService) Cancel(req *dto.CancelBookingRequest) (*models.Reservation, error) {
	reservation, err := s.GetByCode(req.BookingCode)
	if err != nil {
		return nil, err
	}

	reservation.Status = constants.ReservationStatusCancelled
	reservation.CancelReason = req.Reason

	if err := s.db.Save(reservation).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi hủy đặt phòng", err)
	}

	s.dispatchCancelled(reservation)
	return reservation, nil
}

// MarkSecondPaymentPaid xác nhận đợt thanh toán thứ hai đã thu
func (s *BookingService) MarkSecondPaymentPaid(req *dto.SecondPaymentRequest) (*models.Reservation, error) {
	reservation, err := s.GetByCode(req.BookingCode)
	if err != nil {
		return nil, err
	}

	if reservation.SecondPaymentPaid || reservation.SecondPayment == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeAlreadyPaid, "Đặt phòng đã được thanh toán đủ", apperrors.ErrAlreadyPaid)
	}
	if reservation.PaymentStatus == constants.PaymentStatusPending {
		return nil, apperrors.NewAppError(apperrors.ErrCodePaymentNotConfirmed, "Đợt thanh toán đầu chưa được xác nhận", apperrors.ErrPaymentNotConfirmed)
	}

	reservation.SecondPaymentPaid = true
	reservation.PaymentStatus = constants.PaymentStatusCompleted

	if err := s.db.Save(reservation).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi cập nhật thanh toán", err)
	}
	return reservation, nil
}

// Stats tổng hợp số liệu đặt phòng có check-in trong khoảng [from, to)
func (s *BookingService) Stats(from, to time.Time) (*dto.BookingStatsResponse, error) {
	if !to.After(from) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}

	var reservations []models.Reservation
	err := s.db.Where("check_in >= ? AND check_in < ?", from, to).
		Order("check_in").
		Find(&reservations).Error
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy số liệu đặt phòng", err)
	}

	stats := &dto.BookingStatsResponse{}
	monthly := make(map[string]*dto.MonthRevenue)
	var months []string

	for i := range reservations {
		r := &reservations[i]
		stats.TotalBookings++
		if !r.IsActive() {
			stats.CancelledBookings++
			continue
		}
		stats.ActiveBookings++
		stats.Revenue += r.TotalPrice
		stats.TaxVATTotal += r.TaxVAT
		stats.TaxLodgingTotal += r.TaxLodging

		month := r.CheckIn.Format("2006-01")
		entry, ok := monthly[month]
		if !ok {
			entry = &dto.MonthRevenue{Month: month}
			monthly[month] = entry
			months = append(months, month)
		}
		entry.Count++
		entry.Revenue += r.TotalPrice
	}

	for _, month := range months {
		stats.Monthly = append(stats.Monthly, *monthly[month])
	}
	return stats, nil
}

// dispatchCreated gửi email voucher và broadcast realtime, không chặn response
func (s *BookingService) dispatchCreated(reservation *models.Reservation, roomType *models.RoomType) {
	checkIn := utils.FormatDate(reservation.CheckIn)
	checkOut := utils.FormatDate(reservation.CheckOut)

	if reservation.GuestEmail != "" {
		go func() {
			if err := SendBookingEmail(reservation.GuestEmail, reservation.BookingCode, roomType.Name,
				reservation.TotalPrice, checkIn, checkOut); err != nil {
				s.log.Error("gửi email voucher cho %s thất bại: %v", reservation.BookingCode, err)
			}
		}()
	}

	if s.notifier != nil {
		message := notification.NewBookingMessageBuilder(reservation.BookingCode, roomType.Name, checkIn, checkOut).Build()
		go func() {
			if err := s.notifier.SendMessage(message); err != nil {
				s.log.Error("broadcast đặt phòng %s thất bại: %v", reservation.BookingCode, err)
			}
		}()
	}
}

func (s *BookingService) dispatchCancelled(reservation *models.Reservation) {
	if reservation.GuestEmail != "" {
		go func() {
			if err := SendCancellationEmail(reservation.GuestEmail, reservation.BookingCode, reservation.CancelReason); err != nil {
				s.log.Error("gửi email hủy cho %s thất bại: %v", reservation.BookingCode, err)
			}
		}()
	}

	if s.notifier != nil {
		message := notification.NewCancelMessageBuilder(reservation.BookingCode, reservation.CancelReason).Build()
		go func() {
			if err := s.notifier.SendMessage(message); err != nil {
				s.log.Error("broadcast hủy %s thất bại: %v", reservation.BookingCode, err)
			}
		}()
	}
}

// unavailableError dựng lỗi nghiệp vụ kèm breakdown từ kết quả khả dụng
func unavailableError(avail *dto.AvailabilityResult) *apperrors.UnavailableError {
	return &apperrors.UnavailableError{
		RoomTypeID:     avail.RoomTypeID,
		TotalUnits:     avail.TotalUnits,
		BookedUnits:    avail.BookedUnits,
		BlockedUnits:   avail.BlockedUnits + avail.LegacyBlockedUnits,
		AvailableUnits: avail.AvailableUnits,
		BlockReasons:   avail.BlockReasons(),
	}
}

// wrapDBError giữ nguyên lỗi nghiệp vụ, còn lại bọc thành lỗi DB
func wrapDBError(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr
	}
	var unavailable *apperrors.UnavailableError
	if errors.As(err, &unavailable) {
		return unavailable
	}
	return apperrors.NewAppError(apperrors.ErrCodeDBError, message, err)
}
