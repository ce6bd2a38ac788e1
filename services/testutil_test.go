package services

import (
	"testing"
	"time"

	"hotelcore/models"
	"hotelcore/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB mở sqlite in-memory với schema đầy đủ.
// Giới hạn 1 connection để mọi query cùng thấy một DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.RoomType{}, &models.Reservation{}, &models.Block{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := utils.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func createRoomType(t *testing.T, db *gorm.DB, name, tag string, totalUnits int, pricePerNight float64) *models.RoomType {
	t.Helper()
	roomType := &models.RoomType{
		Name:          name,
		PropertyTag:   tag,
		TotalUnits:    totalUnits,
		PricePerNight: pricePerNight,
	}
	if err := db.Create(roomType).Error; err != nil {
		t.Fatalf("create room type: %v", err)
	}
	return roomType
}

func createReservation(t *testing.T, db *gorm.DB, roomTypeID uint, status, checkIn, checkOut string) *models.Reservation {
	t.Helper()
	reservation := &models.Reservation{
		RoomTypeID: roomTypeID,
		CheckIn:    mustDate(t, checkIn),
		CheckOut:   mustDate(t, checkOut),
		Status:     status,
	}
	if err := db.Create(reservation).Error; err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return reservation
}

func createQuantityBlock(t *testing.T, db *gorm.DB, roomTypeIDs []uint, quantity int, startDate, endDate string) *models.Block {
	t.Helper()
	block := &models.Block{
		Scope:     "specific",
		StartDate: mustDate(t, startDate),
		EndDate:   mustDate(t, endDate),
		Reason:    "bảo trì",
		Active:    true,
	}
	if len(roomTypeIDs) == 1 {
		block.RoomTypeID = &roomTypeIDs[0]
	}
	block.SetQuantity(quantity)
	if err := block.SetAffectedIDs(roomTypeIDs); err != nil {
		t.Fatalf("set affected ids: %v", err)
	}
	if err := db.Create(block).Error; err != nil {
		t.Fatalf("create block: %v", err)
	}
	return block
}

func createBlockAllBlock(t *testing.T, db *gorm.DB, roomTypeIDs []uint, startDate, endDate string) *models.Block {
	t.Helper()
	block := &models.Block{
		Scope:     "specific",
		StartDate: mustDate(t, startDate),
		EndDate:   mustDate(t, endDate),
		Reason:    "đóng cửa",
		Active:    true,
	}
	if len(roomTypeIDs) == 1 {
		block.RoomTypeID = &roomTypeIDs[0]
	}
	block.SetBlockAll(true)
	if err := block.SetAffectedIDs(roomTypeIDs); err != nil {
		t.Fatalf("set affected ids: %v", err)
	}
	if err := db.Create(block).Error; err != nil {
		t.Fatalf("create block: %v", err)
	}
	return block
}
