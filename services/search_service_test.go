package services

import (
	"testing"

	"hotelcore/constants"
	"hotelcore/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixtures() []models.RoomType {
	return []models.RoomType{
		{Name: "Phòng Deluxe Hướng Biển", PropertyTag: constants.PropertyTagMainHouse, Amenities: pq.StringArray{"ban công", "bồn tắm"}},
		{Name: "Phòng Standard", PropertyTag: constants.PropertyTagMainHouse},
		{Name: "Boutique Garden Suite", PropertyTag: constants.PropertyTagBoutique, Amenities: pq.StringArray{"vườn riêng"}},
	}
}

func TestSearchExactSubstringRanksFirst(t *testing.T) {
	results := SearchRoomTypes("deluxe", searchFixtures())

	require.NotEmpty(t, results)
	assert.Equal(t, "Phòng Deluxe Hướng Biển", results[0].RoomType.Name)
}

func TestSearchIgnoresAccents(t *testing.T) {
	// "phong deluxe huong bien" không dấu vẫn khớp tên có dấu
	results := SearchRoomTypes("phong deluxe huong bien", searchFixtures())

	require.NotEmpty(t, results)
	assert.Equal(t, "Phòng Deluxe Hướng Biển", results[0].RoomType.Name)
}

func TestSearchToleratesTypo(t *testing.T) {
	results := SearchRoomTypes("phong standard", searchFixtures())

	require.NotEmpty(t, results)
	assert.Equal(t, "Phòng Standard", results[0].RoomType.Name)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	assert.Empty(t, SearchRoomTypes("   ", searchFixtures()))
}

func TestSearchDropsZeroScoreResults(t *testing.T) {
	results := SearchRoomTypes("zzzzqqqq", searchFixtures())

	for _, r := range results {
		assert.Greater(t, r.Score, 0)
	}
}
