package services

import (
	"context"
	"sync"
	"testing"

	"hotelcore/constants"
	"hotelcore/dto"
	"hotelcore/errors"
	"hotelcore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingService(db *gorm.DB, confirmed bool) *BookingService {
	return NewBookingService(db, &StaticPaymentProvider{Confirmed: confirmed}, nil)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateComputesPricingAndSplit(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Deluxe", constants.PropertyTagMainHouse, 5, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "13/01/2026",
		GuestName:    "Nguyễn Văn A",
		PaymentRef:   "pay_123",
	})
	require.NoError(t, err)

	// 3 đêm x 100: subtotal 300, VAT 16% = 48, thuế lưu trú 4% = 12
	assert.Equal(t, 300.0, reservation.Subtotal)
	assert.Equal(t, 48.0, reservation.TaxVAT)
	assert.Equal(t, 12.0, reservation.TaxLodging)
	assert.Equal(t, 360.0, reservation.TotalPrice)

	// Nhiều đêm: chia đôi 50/50
	assert.Equal(t, 180.0, reservation.InitialPayment)
	assert.Equal(t, 180.0, reservation.SecondPayment)
	assert.False(t, reservation.SecondPaymentPaid)
	assert.Equal(t, constants.PaymentStatusPartial, reservation.PaymentStatus)

	assert.NotEmpty(t, reservation.BookingCode)
	assert.Equal(t, constants.ReservationStatusActive, reservation.Status)
}

func TestCreateOneNightPaysFullUpfront(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Standard", constants.PropertyTagMainHouse, 2, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "11/01/2026",
		PaymentRef:   "pay_456",
	})
	require.NoError(t, err)

	assert.Equal(t, reservation.TotalPrice, reservation.InitialPayment)
	assert.Equal(t, 0.0, reservation.SecondPayment)
	assert.Equal(t, constants.PaymentStatusCompleted, reservation.PaymentStatus)
}

func TestCreateTrustsCallerSuppliedPricing(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Suite", constants.PropertyTagBoutique, 2, 500)
	svc := newBookingService(db, true)

	// Client gửi giá đã tính sẵn: dùng nguyên, không tính lại dù lệch thuế suất
	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "12/01/2026",
		Subtotal:     floatPtr(999),
		TaxVAT:       floatPtr(1),
		TaxLodging:   floatPtr(2),
		TotalPrice:   floatPtr(1002),
		PaymentRef:   "pay_789",
	})
	require.NoError(t, err)

	assert.Equal(t, 999.0, reservation.Subtotal)
	assert.Equal(t, 1.0, reservation.TaxVAT)
	assert.Equal(t, 2.0, reservation.TaxLodging)
	assert.Equal(t, 1002.0, reservation.TotalPrice)
	assert.Equal(t, 501.0, reservation.InitialPayment)
	assert.Equal(t, 501.0, reservation.SecondPayment)
}

func TestCreateWithoutPaymentRefIsPending(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Lake", constants.PropertyTagMainHouse, 2, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "12/01/2026",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.PaymentStatusPending, reservation.PaymentStatus)
}

func TestCreateRejectsUnconfirmedPayment(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Garden", constants.PropertyTagBoutique, 2, 100)
	svc := newBookingService(db, false)

	_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "12/01/2026",
		PaymentRef:   "pay_bad",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodePaymentNotConfirmed, appErr.Code)

	// Không được chiếm phòng khi thanh toán bị từ chối
	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateFullRoomWinsOverUnconfirmedPayment(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Chật", constants.PropertyTagMainHouse, 1, 100)
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")
	svc := newBookingService(db, false)

	// Vừa hết phòng vừa chưa thanh toán: hết phòng báo trước
	_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "11/01/2026",
		CheckOutDate: "13/01/2026",
		PaymentRef:   "pay_bad",
	})
	require.Error(t, err)

	var unavailable *errors.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, roomType.ID, unavailable.RoomTypeID)
	assert.Equal(t, 0, unavailable.AvailableUnits)
}

func TestCreateReturnsBreakdownWhenFull(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Solo", constants.PropertyTagMainHouse, 1, 100)
	createReservation(t, db, roomType.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")
	createBlockAllBlock(t, db, []uint{roomType.ID}, "10/01/2026", "15/01/2026")
	svc := newBookingService(db, true)

	_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "12/01/2026",
		CheckOutDate: "14/01/2026",
		PaymentRef:   "pay_full",
	})
	require.Error(t, err)

	var unavailable *errors.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, roomType.ID, unavailable.RoomTypeID)
	assert.Equal(t, 1, unavailable.TotalUnits)
	assert.Equal(t, 1, unavailable.BookedUnits)
	assert.Equal(t, 0, unavailable.AvailableUnits)
	assert.Contains(t, unavailable.BlockReasons, "đóng cửa")
}

func TestCreateInvalidDateRange(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Hill", constants.PropertyTagBoutique, 1, 100)
	svc := newBookingService(db, true)

	_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "15/01/2026",
		CheckOutDate: "10/01/2026",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeInvalidRange, appErr.Code)
}

func TestConcurrentCreatesOnLastUnit(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Cuối", constants.PropertyTagMainHouse, 1, 100)
	svc := newBookingService(db, true)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
				RoomTypeID:   roomType.ID,
				CheckInDate:  "10/01/2026",
				CheckOutDate: "15/01/2026",
				PaymentRef:   "pay_race",
			})
			results[idx] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var unavailable *errors.UnavailableError
		if !assert.ErrorAs(t, err, &unavailable) {
			t.Logf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Where("status = ?", constants.ReservationStatusActive).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCancelReleasesInventoryAndRecancelOverwritesReason(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Mưa", constants.PropertyTagMainHouse, 1, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "15/01/2026",
		PaymentRef:   "pay_cancel",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(&dto.CancelBookingRequest{BookingCode: reservation.BookingCode, Reason: "khách đổi lịch"})
	require.NoError(t, err)
	assert.Equal(t, constants.ReservationStatusCancelled, cancelled.Status)
	assert.Equal(t, "khách đổi lịch", cancelled.CancelReason)

	// Phòng được nhả ngay
	avail, err := NewAvailabilityService(db).Check(roomType.ID, mustDate(t, "10/01/2026"), mustDate(t, "15/01/2026"))
	require.NoError(t, err)
	assert.True(t, avail.IsAvailable)

	// Hủy lần hai không báo lỗi, lý do bị ghi đè
	recancelled, err := svc.Cancel(&dto.CancelBookingRequest{BookingCode: reservation.BookingCode, Reason: "lý do mới"})
	require.NoError(t, err)
	assert.Equal(t, "lý do mới", recancelled.CancelReason)
}

func TestMarkSecondPaymentPaid(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Nắng", constants.PropertyTagBoutique, 1, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "13/01/2026",
		PaymentRef:   "pay_second",
	})
	require.NoError(t, err)
	require.Equal(t, constants.PaymentStatusPartial, reservation.PaymentStatus)

	paid, err := svc.MarkSecondPaymentPaid(&dto.SecondPaymentRequest{BookingCode: reservation.BookingCode})
	require.NoError(t, err)
	assert.True(t, paid.SecondPaymentPaid)
	assert.Equal(t, constants.PaymentStatusCompleted, paid.PaymentStatus)

	// Xác nhận lần hai phải báo đã thanh toán rồi
	_, err = svc.MarkSecondPaymentPaid(&dto.SecondPaymentRequest{BookingCode: reservation.BookingCode})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeAlreadyPaid, appErr.Code)
}

func TestMarkSecondPaymentRequiresConfirmedFirstPayment(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Gió", constants.PropertyTagMainHouse, 1, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "13/01/2026",
	})
	require.NoError(t, err)
	require.Equal(t, constants.PaymentStatusPending, reservation.PaymentStatus)

	_, err = svc.MarkSecondPaymentPaid(&dto.SecondPaymentRequest{BookingCode: reservation.BookingCode})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodePaymentNotConfirmed, appErr.Code)
}

func TestUpdateRecomputesPricingOnDateChange(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng Sông", constants.PropertyTagMainHouse, 2, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "12/01/2026",
		PaymentRef:   "pay_update",
	})
	require.NoError(t, err)
	require.Equal(t, 240.0, reservation.TotalPrice) // 2 đêm x 100 + 20% thuế

	newCheckOut := "15/01/2026"
	updated, err := svc.Update(&dto.UpdateBookingRequest{
		BookingCode:  reservation.BookingCode,
		CheckOutDate: &newCheckOut,
	})
	require.NoError(t, err)

	// 5 đêm x 100 = 500, tổng 600, chia lại 50/50
	assert.Equal(t, 500.0, updated.Subtotal)
	assert.Equal(t, 600.0, updated.TotalPrice)
	assert.Equal(t, 300.0, updated.InitialPayment)
	assert.Equal(t, 300.0, updated.SecondPayment)
}

func TestUpdateRejectedWhenTargetFull(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng A", constants.PropertyTagMainHouse, 1, 100)
	other := createRoomType(t, db, "Phòng B", constants.PropertyTagMainHouse, 1, 100)
	createReservation(t, db, other.ID, constants.ReservationStatusActive, "10/01/2026", "15/01/2026")
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "15/01/2026",
		PaymentRef:   "pay_move",
	})
	require.NoError(t, err)

	_, err = svc.Update(&dto.UpdateBookingRequest{
		BookingCode: reservation.BookingCode,
		RoomTypeID:  &other.ID,
	})
	require.Error(t, err)

	var unavailable *errors.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, other.ID, unavailable.RoomTypeID)
}

func TestUpdateGuestInfoOnlySkipsRecheck(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng C", constants.PropertyTagBoutique, 1, 100)
	svc := newBookingService(db, true)

	reservation, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "10/01/2026",
		CheckOutDate: "12/01/2026",
		PaymentRef:   "pay_guest",
	})
	require.NoError(t, err)
	originalTotal := reservation.TotalPrice

	newName := "Trần Thị B"
	updated, err := svc.Update(&dto.UpdateBookingRequest{
		BookingCode: reservation.BookingCode,
		GuestName:   &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Trần Thị B", updated.GuestName)
	assert.Equal(t, originalTotal, updated.TotalPrice)
}

func TestStatsAggregatesByMonth(t *testing.T) {
	db := newTestDB(t)
	roomType := createRoomType(t, db, "Phòng D", constants.PropertyTagMainHouse, 10, 100)
	svc := newBookingService(db, true)

	for _, dates := range [][2]string{
		{"05/01/2026", "08/01/2026"},
		{"10/01/2026", "12/01/2026"},
		{"03/02/2026", "05/02/2026"},
	} {
		_, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
			RoomTypeID:   roomType.ID,
			CheckInDate:  dates[0],
			CheckOutDate: dates[1],
			PaymentRef:   "pay_stats",
		})
		require.NoError(t, err)
	}

	// Một đơn hủy: vẫn đếm tổng nhưng không tính doanh thu
	cancelled, err := svc.Create(context.Background(), &dto.CreateBookingRequest{
		RoomTypeID:   roomType.ID,
		CheckInDate:  "20/01/2026",
		CheckOutDate: "22/01/2026",
		PaymentRef:   "pay_stats",
	})
	require.NoError(t, err)
	_, err = svc.Cancel(&dto.CancelBookingRequest{BookingCode: cancelled.BookingCode})
	require.NoError(t, err)

	stats, err := svc.Stats(mustDate(t, "01/01/2026"), mustDate(t, "01/03/2026"))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalBookings)
	assert.Equal(t, 3, stats.ActiveBookings)
	assert.Equal(t, 1, stats.CancelledBookings)
	require.Len(t, stats.Monthly, 2)
	assert.Equal(t, "2026-01", stats.Monthly[0].Month)
	assert.Equal(t, 2, stats.Monthly[0].Count)
	assert.Equal(t, "2026-02", stats.Monthly[1].Month)
}

func TestGetByCodeNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newBookingService(db, true)

	_, err := svc.GetByCode("HB2026-000000")
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}
