package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// BlockSweeper định nghĩa interface cho việc dọn các block hết hạn
type BlockSweeper interface {
	SweepExpired(now time.Time) (int64, error)
}

var blockSweeper BlockSweeper

// SetBlockSweeper thiết lập implementation cho BlockSweeper
func SetBlockSweeper(sweeper BlockSweeper) {
	blockSweeper = sweeper
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Cron job chạy lúc 0h mỗi ngày: tắt các block đã qua ngày kết thúc
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang dọn các block hết hạn lúc: %v", now)
		if blockSweeper == nil {
			log.Printf("Lỗi: BlockSweeper chưa được thiết lập")
			return
		}
		swept, err := blockSweeper.SweepExpired(now)
		if err != nil {
			log.Printf("Lỗi khi dọn block hết hạn: %v", err)
			return
		}
		if swept > 0 && m != nil {
			m.Broadcast([]byte("🔔 Đã tắt các block hết hạn, lịch trống được cập nhật"))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
