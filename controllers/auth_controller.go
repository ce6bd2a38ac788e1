package controllers

import (
	"hotelcore/constants"
	"hotelcore/dto"
	"hotelcore/response"
	"hotelcore/services"
	"hotelcore/validator"

	"github.com/gin-gonic/gin"
)

// Login đăng nhập operator dashboard, trả về access token
func Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	user, err := services.GetUserByEmail(request.Email)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	if err := services.CheckPassword(user.Password, request.Password); err != nil {
		response.Unauthorized(c)
		return
	}

	if user.Status != constants.UserStatusActive {
		response.Forbidden(c)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.Role}, 3*24*60)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// Register tạo tài khoản vận hành mới, chỉ admin được gọi
func Register(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateEmail(request.Email); err != nil {
		handleServiceError(c, err)
		return
	}
	if err := validator.ValidatePassword(request.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := services.CreateUser(request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
