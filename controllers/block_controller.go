package controllers

import (
	"strconv"
	"time"

	"hotelcore/dto"
	"hotelcore/models"
	"hotelcore/response"
	"hotelcore/utils"

	"github.com/gin-gonic/gin"
)

func toBlockResponse(block *models.Block) dto.BlockResponse {
	return dto.BlockResponse{
		ID:                block.ID,
		Scope:             block.Scope,
		RoomTypeID:        block.RoomTypeID,
		AffectedRoomTypes: block.AffectedIDs(),
		StartDate:         utils.FormatDate(block.StartDate),
		EndDate:           utils.FormatDate(block.EndDate),
		BlockAll:          block.BlockAll,
		QuantityBlocked:   block.QuantityBlocked,
		Reason:            block.Reason,
		Active:            block.Active,
		CreatedAt:         block.CreatedAt,
		UpdatedAt:         block.UpdatedAt,
	}
}

// CreateBlock tạo block chặn phòng mới
func CreateBlock(c *gin.Context) {
	var request dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	block, err := blockService().Create(&request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, toBlockResponse(block))
}

// GetBlocks liệt kê block theo trang
func GetBlocks(c *gin.Context) {
	page, limit := parsePagination(c)
	activeOnly := c.Query("active") == "true"

	var roomTypeID uint
	if roomTypeIDStr := c.Query("roomTypeId"); roomTypeIDStr != "" {
		if parsed, err := strconv.ParseUint(roomTypeIDStr, 10, 32); err == nil {
			roomTypeID = uint(parsed)
		}
	}

	blocks, total, err := blockService().List(activeOnly, roomTypeID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	blockResponses := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		blockResponses = append(blockResponses, toBlockResponse(&blocks[i]))
	}

	response.SuccessWithPagination(c, blockResponses, page, limit, int(total))
}

// GetDetailBlock lấy block theo ID
func GetDetailBlock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	block, err := blockService().Get(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, toBlockResponse(block))
}

// UpdateBlock sửa block
func UpdateBlock(c *gin.Context) {
	var request dto.UpdateBlockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	block, err := blockService().Update(&request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, toBlockResponse(block))
}

// DeleteBlock xóa hẳn block, phòng được nhả ngay
func DeleteBlock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	if err := blockService().Delete(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, nil)
}

// SweepExpiredBlocks chạy tay việc dọn block hết hạn, bình thường cron lo
func SweepExpiredBlocks(c *gin.Context) {
	swept, err := blockService().SweepExpired(time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	invalidateCache()
	response.Success(c, gin.H{"swept": swept})
}
