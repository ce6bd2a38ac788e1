package services

import (
	"testing"

	"hotelcore/constants"
	"hotelcore/errors"
	"hotelcore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCountsOverlappingActiveBookings(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Deluxe", constants.PropertyTagMainHouse, 5, 100)

	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "12/01/2026", "14/01/2026")
	// Hủy rồi thì không chiếm phòng
	createReservation(t, db, roomType.ID, constants.ReservationStatusCancelled, "12/01/2026", "14/01/2026")

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "13/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.BookedUnits)
	assert.Equal(t, 3, result.AvailableUnits)
	assert.True(t, result.IsAvailable)
}

func TestCheckBackToBackBookingDoesNotOverlap(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Standard", constants.PropertyTagMainHouse, 1, 100)

	// Trả phòng đúng ngày bắt đầu của khoảng truy vấn
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "15/01/2026"), mustDate(t, "20/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.BookedUnits)
	assert.Equal(t, 1, result.AvailableUnits)
	assert.True(t, result.IsAvailable)
}

func TestCheckBlockedUnitsCappedAtTotal(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Suite", constants.PropertyTagBoutique, 3, 200)

	// Tổng quantity của các block vượt quá totalUnits
	createQuantityBlock(t, db, []uint{roomType.ID}, 2, "10/01/2026", "20/01/2026")
	createQuantityBlock(t, db, []uint{roomType.ID}, 2, "10/01/2026", "20/01/2026")

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "14/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 3, result.BlockedUnits)
	assert.Equal(t, 0, result.AvailableUnits)
	assert.False(t, result.IsAvailable)
	assert.Len(t, result.ContributingBlocks, 2)
}

func TestCheckBlockAllTakesWholeRoomType(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Garden", constants.PropertyTagBoutique, 4, 150)

	createBlockAllBlock(t, db, []uint{roomType.ID}, "10/01/2026", "20/01/2026")

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "14/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 4, result.BlockedUnits)
	assert.False(t, result.IsAvailable)
}

func TestCheckInactiveBlockIgnored(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Lake", constants.PropertyTagMainHouse, 2, 120)

	block := createBlockAllBlock(t, db, []uint{roomType.ID}, "10/01/2026", "20/01/2026")
	require.NoError(t, db.Model(block).Update("active", false).Error)

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "14/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.BlockedUnits)
	assert.Equal(t, 2, result.AvailableUnits)
}

func TestCheckLegacyRangesAdditiveBeyondCap(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Cổ", constants.PropertyTagMainHouse, 2, 100)

	// blockedRanges kiểu cũ: mỗi entry chiếm 1 phòng, cộng dồn không cắt trần
	require.NoError(t, roomType.SetLegacyRanges([]models.DateRange{
		{Start: "10/01/2026", End: "20/01/2026"},
		{Start: "11/01/2026", End: "15/01/2026"},
		{Start: "12/01/2026", End: "13/01/2026"},
	}))
	require.NoError(t, db.Save(roomType).Error)

	// booked+blocked đã chiếm hết 2 phòng, legacy trừ tiếp nhưng kết quả kẹp ở 0
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "20/01/2026")
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "20/01/2026")

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "12/01/2026"), mustDate(t, "13/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.BookedUnits)
	assert.Equal(t, 3, result.LegacyBlockedUnits)
	assert.Equal(t, 0, result.AvailableUnits)
	assert.False(t, result.IsAvailable)
}

func TestCheckLegacyRangeOutsideWindowIgnored(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Hill", constants.PropertyTagBoutique, 2, 100)

	require.NoError(t, roomType.SetLegacyRanges([]models.DateRange{
		{Start: "01/02/2026", End: "05/02/2026"},
	}))
	require.NoError(t, db.Save(roomType).Error)

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "15/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.LegacyBlockedUnits)
	assert.Equal(t, 2, result.AvailableUnits)
}

func TestCheckZeroTotalUnitsNeverAvailable(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Đóng", constants.PropertyTagMainHouse, 0, 100)

	result, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "15/01/2026"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.AvailableUnits)
	assert.False(t, result.IsAvailable)
}

func TestCheckInvalidRange(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Bất Kỳ", constants.PropertyTagMainHouse, 1, 100)

	_, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "15/01/2026"), mustDate(t, "15/01/2026"))
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeInvalidRange, appErr.Code)
}

func TestCheckUnknownRoomType(t *testing.T) {
	db := newTestDB(t)

	_, err := NewAvailabilityService(db).Check(999, mustDate(t, "10/01/2026"), mustDate(t, "15/01/2026"))
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestCheckAllFiltersByPropertyTag(t *testing.T) {
	db := newTestDB(t)
	mainHouse := createRoomType(t, db, "Phòng Main", constants.PropertyTagMainHouse, 2, 100)
	createRoomType(t, db, "Phòng Boutique", constants.PropertyTagBoutique, 3, 150)

	results, err := NewAvailabilityService(db).CheckAll(constants.PropertyTagMainHouse, mustDate(t, "10/01/2026"), mustDate(t, "15/01/2026"))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, mainHouse.ID, results[0].RoomTypeID)
}

func TestCheckExcludingSkipsOwnReservation(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Solo", constants.PropertyTagMainHouse, 1, 100)

	reservation := createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")

	result, err := NewAvailabilityService(db).CheckExcluding(roomType.ID, mustDate(t, "11/01/2026"), mustDate(t, "16/01/2026"), reservation.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.BookedUnits)
	assert.True(t, result.IsAvailable)
}
