package services

import (
	"time"

	"hotelcore/constants"
	"hotelcore/dto"
	"hotelcore/errors"
	"hotelcore/models"
	"hotelcore/utils"

	"gorm.io/gorm"
)

// AvailabilityService tính số phòng còn trống của một loại phòng trong một khoảng ngày.
// Nhận *gorm.DB qua constructor để chạy được cả trên transaction đang mở.
type AvailabilityService struct {
	db *gorm.DB
}

// NewAvailabilityService tạo instance mới của AvailabilityService
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// Check tính breakdown khả dụng cho một loại phòng trong khoảng [checkIn, checkOut).
//
// available = max(0, totalUnits - min(bookedUnits+blockedUnits, totalUnits) - legacyBlockedUnits)
//
// blockedUnits từ bảng blocks được cắt trần ở totalUnits; legacy blockedRanges là
// dữ liệu kiểu cũ, cộng dồn không cắt trần, trừ sau cùng.
func (s *AvailabilityService) Check(roomTypeID uint, checkIn, checkOut time.Time) (*dto.AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	var roomType models.RoomType
	if err := s.db.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi khi lấy thông tin loại phòng", err)
	}

	return s.checkRoomType(&roomType, checkIn, checkOut, 0)
}

// CheckExcluding như Check nhưng bỏ qua một đặt phòng đang có,
// dùng khi đổi ngày/đổi loại phòng để booking không tự chặn chính nó.
func (s *AvailabilityService) CheckExcluding(roomTypeID uint, checkIn, checkOut time.Time, excludeReservationID uint) (*dto.AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	var roomType models.RoomType
	if err := s.db.First(&roomType, roomTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewAppError(errors.ErrCodeNotFound, "Không tìm thấy loại phòng", errors.ErrRoomTypeNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi khi lấy thông tin loại phòng", err)
	}

	return s.checkRoomType(&roomType, checkIn, checkOut, excludeReservationID)
}

// CheckAll tính khả dụng cho toàn bộ loại phòng, lọc theo property tag nếu có
func (s *AvailabilityService) CheckAll(propertyTag string, checkIn, checkOut time.Time) ([]dto.AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	query := s.db.Model(&models.RoomType{})
	if propertyTag != "" {
		if !constants.IsValidPropertyTag(propertyTag) {
			return nil, errors.NewAppError(errors.ErrCodeValidation, "Nhóm cơ sở không hợp lệ: "+propertyTag, nil)
		}
		query = query.Where("property_tag = ?", propertyTag)
	}

	var roomTypes []models.RoomType
	if err := query.Order("id").Find(&roomTypes).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi khi lấy danh sách loại phòng", err)
	}

	results := make([]dto.AvailabilityResult, 0, len(roomTypes))
	for i := range roomTypes {
		result, err := s.checkRoomType(&roomTypes[i], checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *AvailabilityService) checkRoomType(roomType *models.RoomType, checkIn, checkOut time.Time, excludeReservationID uint) (*dto.AvailabilityResult, error) {
	booked, err := s.countBookedUnits(roomType.ID, checkIn, checkOut, excludeReservationID)
	if err != nil {
		return nil, err
	}

	blocked, contributing, err := s.countBlockedUnits(roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	legacy := s.countLegacyBlockedUnits(roomType, checkIn, checkOut)

	// blocked đã cắt trần ở totalUnits; legacy cộng dồn không cắt trần
	occupied := booked + blocked
	if occupied > roomType.TotalUnits {
		occupied = roomType.TotalUnits
	}
	available := roomType.TotalUnits - occupied - legacy
	if available < 0 {
		available = 0
	}

	return &dto.AvailabilityResult{
		RoomTypeID:         roomType.ID,
		TotalUnits:         roomType.TotalUnits,
		BookedUnits:        booked,
		BlockedUnits:       blocked,
		LegacyBlockedUnits: legacy,
		AvailableUnits:     available,
		IsAvailable:        available > 0,
		ContributingBlocks: contributing,
	}, nil
}

// countBookedUnits đếm số đặt phòng active giao với khoảng truy vấn.
// Hai khoảng nửa-mở giao nhau khi a.start < b.end và a.end > b.start,
// nên đặt phòng trả phòng đúng ngày nhận của khoảng truy vấn không bị tính.
func (s *AvailabilityService) countBookedUnits(roomTypeID uint, checkIn, checkOut time.Time, excludeReservationID uint) (int, error) {
	query := s.db.Model(&models.Reservation{}).
		Where("room_type_id = ? AND status = ? AND check_in < ? AND check_out > ?",
			roomTypeID, constants.ReservationStatusActive, checkOut, checkIn)
	if excludeReservationID != 0 {
		query = query.Where("id <> ?", excludeReservationID)
	}

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Lỗi khi đếm đặt phòng", err)
	}
	return int(count), nil
}

// countBlockedUnits cộng số phòng bị các block active chiếm trong khoảng truy vấn,
// cắt trần ở totalUnits. Membership lấy từ snapshot của block, không join lại.
func (s *AvailabilityService) countBlockedUnits(roomType *models.RoomType, checkIn, checkOut time.Time) (int, []dto.ContributingBlock, error) {
	var blocks []models.Block
	err := s.db.
		Where("active = ? AND start_date < ? AND end_date > ?", true, checkOut, checkIn).
		Order("id").
		Find(&blocks).Error
	if err != nil {
		return 0, nil, errors.NewAppError(errors.ErrCodeDBError, "Lỗi khi lấy danh sách block", err)
	}

	blocked := 0
	var contributing []dto.ContributingBlock
	for i := range blocks {
		if !blocks[i].AppliesTo(roomType.ID) {
			continue
		}
		blocked += blocks[i].UnitsBlocked(roomType.TotalUnits)
		contributing = append(contributing, dto.ContributingBlock{
			ID:              blocks[i].ID,
			Scope:           blocks[i].Scope,
			Reason:          blocks[i].Reason,
			BlockAll:        blocks[i].BlockAll,
			QuantityBlocked: blocks[i].QuantityBlocked,
			StartDate:       utils.FormatDate(blocks[i].StartDate),
			EndDate:         utils.FormatDate(blocks[i].EndDate),
		})
	}

	if blocked > roomType.TotalUnits {
		blocked = roomType.TotalUnits
	}
	return blocked, contributing, nil
}

// countLegacyBlockedUnits đếm các blockedRanges kiểu cũ giao với khoảng truy vấn.
// Mỗi entry chiếm đúng 1 phòng; entry hỏng định dạng thì bỏ qua.
func (s *AvailabilityService) countLegacyBlockedUnits(roomType *models.RoomType, checkIn, checkOut time.Time) int {
	legacy := 0
	for _, dateRange := range roomType.LegacyRanges() {
		start, err := utils.ParseDate(dateRange.Start)
		if err != nil {
			continue
		}
		end, err := utils.ParseDate(dateRange.End)
		if err != nil {
			continue
		}
		if utils.Overlaps(start, end, checkIn, checkOut) {
			legacy++
		}
	}
	return legacy
}
