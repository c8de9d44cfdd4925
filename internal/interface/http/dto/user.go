package dto

// RegisterRequest HTTP层注册请求
// 说明：不加binding:"required"，空值交给领域层校验，统一返回VALIDATION_ERROR
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}

// UserResponse 注册结果（不包含密码）
type UserResponse struct {
	Username string `json:"username" example:"alice"`
}
