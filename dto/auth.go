package dto

// LoginRequest request đăng nhập dashboard
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest request tạo tài khoản vận hành, chỉ admin được gọi
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     int    `json:"role"`
}

// LoginResponse token trả về sau đăng nhập
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  int    `json:"role"`
}
