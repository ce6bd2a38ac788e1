package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotelcore/dto"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFromRedisHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cached := dto.AvailabilityResult{RoomTypeID: 7, TotalUnits: 5, AvailableUnits: 3, IsAvailable: true}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	key := CacheKeyAvailability(7, "10/01/2026", "15/01/2026")
	mock.ExpectGet(key).SetVal(string(payload))

	var result dto.AvailabilityResult
	require.NoError(t, GetFromRedis(context.Background(), rdb, key, &result))
	assert.Equal(t, cached, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFromRedisMissLeavesTargetZero(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(CacheKeyRoomTypes).RedisNil()

	var result dto.AvailabilityResult
	require.NoError(t, GetFromRedis(context.Background(), rdb, CacheKeyRoomTypes, &result))
	assert.Equal(t, uint(0), result.RoomTypeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFromRedisBadPayload(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(CacheKeyBlocks).SetVal("không phải json")

	var result dto.AvailabilityResult
	assert.Error(t, GetFromRedis(context.Background(), rdb, CacheKeyBlocks, &result))
}

func TestSetToRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	value := dto.AvailabilityResult{RoomTypeID: 3, TotalUnits: 2, AvailableUnits: 2, IsAvailable: true}
	payload, err := json.Marshal(value)
	require.NoError(t, err)

	key := CacheKeyAvailability(3, "01/02/2026", "03/02/2026")
	mock.ExpectSet(key, payload, 5*time.Minute).SetVal("OK")

	require.NoError(t, SetToRedis(context.Background(), rdb, key, value, 5*time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFromRedis(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(CacheKeyRoomTypes).SetVal(1)

	require.NoError(t, DeleteFromRedis(context.Background(), rdb, CacheKeyRoomTypes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateInventoryCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(CacheKeyRoomTypes, CacheKeyBlocks).SetVal(2)
	mock.ExpectScan(0, "availability:*", 100).SetVal([]string{
		CacheKeyAvailability(1, "10/01/2026", "12/01/2026"),
	}, 0)
	mock.ExpectDel(CacheKeyAvailability(1, "10/01/2026", "12/01/2026")).SetVal(1)

	require.NoError(t, InvalidateInventoryCache(context.Background(), rdb))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateInventoryCacheNilClient(t *testing.T) {
	assert.NoError(t, InvalidateInventoryCache(context.Background(), nil))
}
