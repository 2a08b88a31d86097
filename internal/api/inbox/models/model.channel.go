package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel gom nhóm các integration và phân quyền cho các thành viên.
// User chỉ nhìn thấy các hội thoại thuộc integration của channel mình là thành viên.
type Channel struct {
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"` // ID của channel
	Name              string               `json:"name" bson:"name" index:"text"`     // Tên channel
	Description       string               `json:"description,omitempty" bson:"description,omitempty"`
	MemberIDs         []primitive.ObjectID `json:"memberIds" bson:"memberIds" index:"single:1"` // Các user là thành viên
	IntegrationIDs    []primitive.ObjectID `json:"integrationIds" bson:"integrationIds"`        // Các integration thuộc channel
	ConversationCount int64                `json:"conversationCount,omitempty" bson:"-"`        // Đếm kèm khi trả về danh sách, không lưu
	CreatedAt         int64                `json:"createdAt" bson:"createdAt"`                  // Thời gian tạo
	UpdatedAt         int64                `json:"updatedAt" bson:"updatedAt"`                  // Thời gian cập nhật
}

// HasMember kiểm tra user có là thành viên của channel không
func (ch *Channel) HasMember(userID primitive.ObjectID) bool {
	for _, id := range ch.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
