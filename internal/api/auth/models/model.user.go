// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role của người dùng
const (
	RoleAdmin = "admin" // Quản trị viên, có quyền ghi trên mọi tài nguyên
	RoleAgent = "agent" // Nhân viên hỗ trợ, có quyền đọc và thao tác hội thoại
)

// User định nghĩa mô hình người dùng (agent xử lý hội thoại).
// StarredConversationIDs chứa danh sách hội thoại user đã đánh dấu sao.
type User struct {
	ID                     primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username               string               `json:"username" bson:"username" index:"unique"`
	Email                  string               `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Password               string               `json:"-" bson:"password,omitempty"`
	Role                   string               `json:"role" bson:"role"`
	Details                UserDetails          `json:"details" bson:"details"`
	StarredConversationIDs []primitive.ObjectID `json:"starredConversationIds" bson:"starredConversationIds"`
	Token                  string               `json:"-" bson:"token"`
	IsBlock                bool                 `json:"-" bson:"isBlock"`
	BlockNote              string               `json:"-" bson:"blockNote"`
	CreatedAt              int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt              int64                `json:"updatedAt" bson:"updatedAt"`
}

// UserDetails chứa thông tin hiển thị của người dùng
type UserDetails struct {
	FullName  string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Position  string `json:"position,omitempty" bson:"position,omitempty"`
}

// IsAdmin kiểm tra user có role quản trị viên không
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasStarred kiểm tra user đã đánh dấu sao hội thoại này chưa
func (u *User) HasStarred(conversationID primitive.ObjectID) bool {
	for _, id := range u.StarredConversationIDs {
		if id == conversationID {
			return true
		}
	}
	return false
}
