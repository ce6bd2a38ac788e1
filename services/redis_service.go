package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key cho các danh sách hay đọc; mọi chỗ ghi phải xóa key tương ứng
const (
	CacheKeyRoomTypes = "roomtypes:all"
	CacheKeyBlocks    = "blocks:active"
)

// CacheKeyAvailability key cache cho một truy vấn khả dụng cụ thể
func CacheKeyAvailability(roomTypeID uint, checkIn, checkOut string) string {
	return fmt.Sprintf("availability:%d:%s:%s", roomTypeID, checkIn, checkOut)
}

// Hàm lấy data từ Redis
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	// Parse JSON thành object
	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// InvalidateInventoryCache xóa các key cache bị ảnh hưởng khi inventory thay đổi.
// Key availability có ngày trong tên nên xóa theo pattern.
func InvalidateInventoryCache(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}

	if err := rdb.Del(ctx, CacheKeyRoomTypes, CacheKeyBlocks).Err(); err != nil {
		return err
	}

	iter := rdb.Scan(ctx, 0, "availability:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
