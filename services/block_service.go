package services

import (
	"errors"
	"time"

	"hotelcore/constants"
	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/utils"
	"hotelcore/validator"

	"gorm.io/gorm"
)

// BlockService quản lý các khoảng chặn phòng của vận hành.
// Danh sách room type bị ảnh hưởng được chụp snapshot lúc tạo/sửa;
// block theo số lượng chỉ được tạo khi mọi room type trong scope còn đủ chỗ.
type BlockService struct {
	db  *gorm.DB
	log logger.Logger
}

// NewBlockService tạo instance mới của BlockService
func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{
		db:  db,
		log: logger.NewDefaultLogger(logger.InfoLevel).WithPrefix("[block]"),
	}
}

// resolveAffectedRoomTypes trả về danh sách room type mà scope phủ tới
func (s *BlockService) resolveAffectedRoomTypes(scope string, roomTypeID *uint) ([]models.RoomType, error) {
	var roomTypes []models.RoomType

	switch {
	case scope == constants.BlockScopeSpecific:
		var roomType models.RoomType
		if err := s.db.First(&roomType, *roomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy loại phòng", err)
			}
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy thông tin loại phòng", err)
		}
		roomTypes = append(roomTypes, roomType)
	case scope == constants.BlockScopeAll:
		if err := s.db.Order("id").Find(&roomTypes).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách loại phòng", err)
		}
	default:
		// scope là một property tag
		if err := s.db.Where("property_tag = ?", scope).Order("id").Find(&roomTypes).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách loại phòng", err)
		}
	}

	return roomTypes, nil
}

// Create tạo block mới. Block theo số lượng phải vừa với sức chứa còn lại
// của TẤT CẢ room type trong scope, không thì từ chối toàn bộ.
func (s *BlockService) Create(req *dto.CreateBlockRequest) (*models.Block, error) {
	startDate, endDate, err := validator.ValidateDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate.Before(utils.Today()) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Ngày bắt đầu không được ở quá khứ", nil)
	}

	block := &models.Block{
		Scope:      req.Scope,
		RoomTypeID: req.RoomTypeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Active:     true,
	}
	if req.BlockAll {
		block.SetBlockAll(true)
	} else if req.Quantity != nil {
		block.SetQuantity(*req.Quantity)
	}

	if err := validator.ValidateBlock(block); err != nil {
		return nil, err
	}

	roomTypes, err := s.resolveAffectedRoomTypes(block.Scope, block.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if len(roomTypes) == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không có loại phòng nào trong phạm vi block", nil)
	}

	ids := make([]uint, 0, len(roomTypes))
	for _, rt := range roomTypes {
		ids = append(ids, rt.ID)
	}
	if err := block.SetAffectedIDs(ids); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Không thể lưu danh sách loại phòng bị ảnh hưởng", err)
	}

	unlock := LockRoomTypes(ids)
	defer unlock()

	if err := s.checkCapacity(s.db, block, roomTypes); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkCapacity(tx, block, roomTypes); err != nil {
			if _, ok := err.(*apperrors.InsufficientCapacityError); ok {
				return apperrors.NewAppError(apperrors.ErrCodeConflict, "Sức chứa vừa thay đổi bởi yêu cầu khác", err)
			}
			return err
		}
		return tx.Create(block).Error
	})
	if err != nil {
		return nil, wrapDBError(err, "Lỗi khi tạo block")
	}

	s.log.Info("đã tạo block %d scope=%s từ %s đến %s", block.ID, block.Scope,
		utils.FormatDate(block.StartDate), utils.FormatDate(block.EndDate))
	return block, nil
}

// checkCapacity kiểm tra all-or-nothing: mọi room type trong scope phải còn đủ
// chỗ cho số lượng yêu cầu. Block toàn bộ (blockAll) yêu cầu đúng totalUnits,
// nên chỉ qua khi khoảng ngày chưa có gì chiếm. Room type đầu tiên không đạt
// sẽ được nêu tên.
func (s *BlockService) checkCapacity(db *gorm.DB, block *models.Block, roomTypes []models.RoomType) error {
	for i := range roomTypes {
		remaining, err := s.remainingCapacity(db, &roomTypes[i], block.StartDate, block.EndDate, block.ID)
		if err != nil {
			return err
		}
		requested := block.UnitsBlocked(roomTypes[i].TotalUnits)
		if requested > remaining {
			return &apperrors.InsufficientCapacityError{
				RoomTypeID:   roomTypes[i].ID,
				RoomTypeName: roomTypes[i].Name,
				Requested:    requested,
				Remaining:    remaining,
			}
		}
	}
	return nil
}

// remainingCapacity tính số phòng còn trống của một room type trong một khoảng,
// bỏ qua chính block đang sửa (excludeBlockID = 0 khi tạo mới)
func (s *BlockService) remainingCapacity(db *gorm.DB, roomType *models.RoomType, startDate, endDate time.Time, excludeBlockID uint) (int, error) {
	var booked int64
	err := db.Model(&models.Reservation{}).
		Where("room_type_id = ? AND status = ? AND check_in < ? AND check_out > ?",
			roomType.ID, constants.ReservationStatusActive, endDate, startDate).
		Count(&booked).Error
	if err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi đếm đặt phòng", err)
	}

	query := db.Where("active = ? AND start_date < ? AND end_date > ?", true, endDate, startDate)
	if excludeBlockID != 0 {
		query = query.Where("id <> ?", excludeBlockID)
	}
	var blocks []models.Block
	if err := query.Find(&blocks).Error; err != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách block", err)
	}

	blocked := 0
	for i := range blocks {
		if blocks[i].AppliesTo(roomType.ID) {
			blocked += blocks[i].UnitsBlocked(roomType.TotalUnits)
		}
	}
	if blocked > roomType.TotalUnits {
		blocked = roomType.TotalUnits
	}

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
		if utils.Overlaps(start, end, startDate, endDate) {
			legacy++
		}
	}

	occupied := int(booked) + blocked
	if occupied > roomType.TotalUnits {
		occupied = roomType.TotalUnits
	}
	remaining := roomType.TotalUnits - occupied - legacy
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Get lấy block theo ID
func (s *BlockService) Get(id uint) (*models.Block, error) {
	var block models.Block
	err := s.db.First(&block, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không tìm thấy block", apperrors.ErrBlockNotFound)
	}
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy block", err)
	}
	return &block, nil
}

// List liệt kê block, lọc theo trạng thái active và room type nếu có
func (s *BlockService) List(activeOnly bool, roomTypeID uint, page, limit int) ([]models.Block, int64, error) {
	query := s.db.Model(&models.Block{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var blocks []models.Block
	if err := query.Order("start_date DESC").Find(&blocks).Error; err != nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách block", err)
	}

	// Membership nằm trong snapshot JSON nên lọc theo room type ở tầng ứng dụng
	if roomTypeID != 0 {
		filtered := blocks[:0]
		for i := range blocks {
			if blocks[i].AppliesTo(roomTypeID) {
				filtered = append(filtered, blocks[i])
			}
		}
		blocks = filtered
	}

	total := int64(len(blocks))
	start := (page - 1) * limit
	if start > len(blocks) {
		start = len(blocks)
	}
	end := start + limit
	if end > len(blocks) {
		end = len(blocks)
	}
	return blocks[start:end], total, nil
}

// Update sửa block. Đổi scope sẽ chụp lại snapshot; đổi số lượng hay khoảng ngày
// sẽ kiểm tra lại sức chứa như lúc tạo.
func (s *BlockService) Update(req *dto.UpdateBlockRequest) (*models.Block, error) {
	block, err := s.Get(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Scope != nil {
		block.Scope = *req.Scope
	}
	if req.RoomTypeID != nil {
		block.RoomTypeID = req.RoomTypeID
	}
	if block.Scope != constants.BlockScopeSpecific {
		block.RoomTypeID = nil
	}
	if req.StartDate != nil {
		startDate, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Định dạng ngày bắt đầu không hợp lệ", err)
		}
		block.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidRange, "Định dạng ngày kết thúc không hợp lệ", err)
		}
		block.EndDate = endDate
	}
	if req.BlockAll != nil && *req.BlockAll {
		block.SetBlockAll(true)
	} else if req.Quantity != nil {
		block.SetQuantity(*req.Quantity)
	} else if req.BlockAll != nil && !*req.BlockAll && block.QuantityBlocked == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, "Tắt blockAll thì phải có số lượng", nil)
	}
	if req.Reason != nil {
		block.Reason = *req.Reason
	}

	if err := validator.ValidateBlock(block); err != nil {
		return nil, err
	}

	// Chỉ chụp lại snapshot khi scope đổi; sửa lý do hay ngày giữ nguyên
	// membership đã chụp lúc tạo
	var roomTypes []models.RoomType
	if req.Scope != nil || req.RoomTypeID != nil {
		roomTypes, err = s.resolveAffectedRoomTypes(block.Scope, block.RoomTypeID)
		if err != nil {
			return nil, err
		}
		if len(roomTypes) == 0 {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Không có loại phòng nào trong phạm vi block", nil)
		}

		ids := make([]uint, 0, len(roomTypes))
		for _, rt := range roomTypes {
			ids = append(ids, rt.ID)
		}
		if err := block.SetAffectedIDs(ids); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Không thể lưu danh sách loại phòng bị ảnh hưởng", err)
		}
	} else {
		err = s.db.Where("id IN ?", block.AffectedIDs()).Order("id").Find(&roomTypes).Error
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi lấy danh sách loại phòng", err)
		}
	}

	ids := block.AffectedIDs()

	unlock := LockRoomTypes(ids)
	defer unlock()

	if err := s.checkCapacity(s.db, block, roomTypes); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkCapacity(tx, block, roomTypes); err != nil {
			if _, ok := err.(*apperrors.InsufficientCapacityError); ok {
				return apperrors.NewAppError(apperrors.ErrCodeConflict, "Sức chứa vừa thay đổi bởi yêu cầu khác", err)
			}
			return err
		}
		return tx.Save(block).Error
	})
	if err != nil {
		return nil, wrapDBError(err, "Lỗi khi cập nhật block")
	}
	return block, nil
}

// Delete xóa hẳn block khỏi DB, phòng được nhả ngay
func (s *BlockService) Delete(id uint) error {
	block, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(block).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi xóa block", err)
	}
	return nil
}

// SweepExpired tắt các block đã qua ngày kết thúc. Chạy lại không đổi kết quả:
// block đã tắt rồi thì không đụng tới.
func (s *BlockService) SweepExpired(now time.Time) (int64, error) {
	result := s.db.Model(&models.Block{}).
		Where("active = ? AND end_date < ?", true, now).
		Update("active", false)
	if result.Error != nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeDBError, "Lỗi khi dọn block hết hạn", result.Error)
	}
	if result.RowsAffected > 0 {
		s.log.Info("đã tắt %d block hết hạn", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
