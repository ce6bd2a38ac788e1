package services

import (
	"sort"
	"strings"

	"hotelcore/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ScoredRoomType một loại phòng kèm điểm phù hợp với query
type ScoredRoomType struct {
	RoomType models.RoomType
	Score    int
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// scoreRoomType tính điểm phù hợp của một loại phòng với query đã chuẩn hóa
func scoreRoomType(normalizedQuery string, roomType models.RoomType, cmNames *closestmatch.ClosestMatch) int {
	score := 0
	normalizedName := normalizeInput(roomType.Name)

	if strings.Contains(normalizedName, normalizedQuery) {
		score += 20
	}
	if cmNames.Closest(normalizedQuery) == normalizedName {
		score += 13
	}
	if calculateSimilarity(normalizedQuery, normalizedName) > 0.6 {
		score += 10
	}
	if strings.Contains(normalizedQuery, roomType.PropertyTag) {
		score += 5
	}
	for _, amenity := range roomType.Amenities {
		if strings.Contains(normalizedQuery, normalizeInput(amenity)) {
			score += 2
		}
	}
	return score
}

// SearchRoomTypes tìm loại phòng theo tên gần đúng, có chịu lỗi chính tả và dấu.
// Kết quả sắp theo điểm giảm dần, loại bỏ các kết quả điểm 0.
func SearchRoomTypes(query string, roomTypes []models.RoomType) []ScoredRoomType {
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" {
		return nil
	}

	names := make([]string, 0, len(roomTypes))
	for _, rt := range roomTypes {
		names = append(names, normalizeInput(rt.Name))
	}
	cmNames := createMatcher(names)

	var results []ScoredRoomType
	for _, rt := range roomTypes {
		score := scoreRoomType(normalizedQuery, rt, cmNames)
		if score > 0 {
			results = append(results, ScoredRoomType{RoomType: rt, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
