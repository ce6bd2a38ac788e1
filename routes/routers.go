package routes

import (
	"context"
	"net/http"

	"hotelcore/config"
	"hotelcore/controllers"
	middlewares "hotelcore/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.SessionMiddleware())
	v1.Use(middlewares.ErrorHandler())

	v1.POST("/auth/login", controllers.Login)
	v1.POST("/auth/register", middlewares.AuthMiddleware(1), controllers.Register)

	// Khả dụng: public cho trang đặt phòng
	v1.GET("/availability", controllers.GetAvailability)
	v1.GET("/availabilityAll", controllers.GetAllAvailability)

	// Đặt phòng
	v1.POST("/booking", controllers.CreateBooking)
	v1.GET("/booking", middlewares.AuthMiddleware(0, 1), controllers.GetBookings)
	v1.GET("/booking/:code", controllers.GetDetailBooking)
	v1.PUT("/bookingUpdate", middlewares.AuthMiddleware(0, 1), controllers.UpdateBooking)
	v1.PUT("/bookingCancel", middlewares.AuthMiddleware(0, 1), controllers.CancelBooking)
	v1.PUT("/bookingSecondPayment", middlewares.AuthMiddleware(0, 1), controllers.MarkSecondPayment)
	v1.GET("/bookingStats", middlewares.AuthMiddleware(1), controllers.GetBookingStats)

	// Block chặn phòng: chỉ dashboard vận hành
	v1.GET("/blocks", middlewares.AuthMiddleware(0, 1), controllers.GetBlocks)
	v1.POST("/blocks", middlewares.AuthMiddleware(1), controllers.CreateBlock)
	v1.GET("/blocks/:id", middlewares.AuthMiddleware(0, 1), controllers.GetDetailBlock)
	v1.PUT("/blocksUpdate", middlewares.AuthMiddleware(1), controllers.UpdateBlock)
	v1.DELETE("/blocks/:id", middlewares.AuthMiddleware(1), controllers.DeleteBlock)
	v1.POST("/blocksSweep", middlewares.AuthMiddleware(1), controllers.SweepExpiredBlocks)

	// Loại phòng
	v1.GET("/roomTypes", controllers.GetRoomTypes)
	v1.GET("/roomTypes/:id", controllers.GetDetailRoomType)
	v1.GET("/roomTypesSearch", controllers.SearchRoomTypes)
	v1.POST("/roomTypes", middlewares.AuthMiddleware(1), controllers.CreateRoomType)
	v1.PUT("/roomTypesUpdate", middlewares.AuthMiddleware(1), controllers.UpdateRoomType)
	v1.DELETE("/roomTypes/:id", middlewares.AuthMiddleware(1), controllers.DeleteRoomType)

	v1.POST("/img/multi-upload", middlewares.AuthMiddleware(1), func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "roomtypes"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", middlewares.AuthMiddleware(1), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload avatar thành công",
			"url":     resp.SecureURL,
		})
	})

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Lịch phòng vừa thay đổi!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})

}
