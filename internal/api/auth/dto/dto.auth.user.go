// Package dto - các input DTO cho domain auth.
package dto

// UserCreateInput dữ liệu đầu vào khi tạo người dùng
type UserCreateInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,no_xss"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"required,oneof=admin agent"`
	FullName string `json:"fullName,omitempty" validate:"omitempty,max=100,no_xss"`
}

// UserUpdateInput dữ liệu đầu vào khi cập nhật người dùng
type UserUpdateInput struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin agent"`
	FullName string `json:"fullName,omitempty" validate:"omitempty,max=100,no_xss"`
}

// UserLoginInput dữ liệu đầu vào khi đăng nhập
type UserLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserChangePasswordInput dữ liệu đầu vào khi đổi mật khẩu
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UserLoginResult kết quả đăng nhập trả về cho client
type UserLoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
