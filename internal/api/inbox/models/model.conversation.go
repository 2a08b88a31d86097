package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation đại diện cho một cuộc hội thoại giữa khách hàng và đội hỗ trợ.
// Mỗi hội thoại gắn với đúng một integration; quyền nhìn thấy hội thoại
// được suy ra từ channel chứa integration đó.
type Conversation struct {
	ID                  primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`                                    // ID của hội thoại
	IntegrationID       primitive.ObjectID   `json:"integrationId" bson:"integrationId" index:"single:1"`                  // Integration mà hội thoại đi qua
	CustomerID          primitive.ObjectID   `json:"customerId,omitempty" bson:"customerId,omitempty"`                     // Khách hàng trong hội thoại
	UserID              *primitive.ObjectID  `json:"userId,omitempty" bson:"userId,omitempty"`                             // User khởi tạo; nil nghĩa là do hệ thống/bot tạo
	Status              string               `json:"status" bson:"status" index:"single:1"`                                // Trạng thái: new | open | closed
	Content             string               `json:"content,omitempty" bson:"content,omitempty" index:"text"`              // Nội dung tin nhắn gần nhất
	AssignedUserID      *primitive.ObjectID  `json:"assignedUserId,omitempty" bson:"assignedUserId,omitempty"`             // User được phân công; nil nghĩa là chưa phân công
	ParticipatedUserIDs []primitive.ObjectID `json:"participatedUserIds" bson:"participatedUserIds" index:"single:1"`      // Các user đã tham gia hội thoại
	ReadUserIDs         []primitive.ObjectID `json:"readUserIds" bson:"readUserIds"`                                       // Các user đã đọc hội thoại
	TagIDs              []primitive.ObjectID `json:"tagIds" bson:"tagIds" index:"single:1"`                                // Các tag gắn vào hội thoại (phân vùng conversation)
	MessageCount        int64                `json:"messageCount" bson:"messageCount"`                                     // Số tin nhắn trong hội thoại
	CreatedAt           int64                `json:"createdAt" bson:"createdAt" index:"single:-1"`                         // Thời gian tạo
	UpdatedAt           int64                `json:"updatedAt" bson:"updatedAt"`                                           // Thời gian cập nhật
}

// IsResolved kiểm tra hội thoại đã đóng chưa
func (c *Conversation) IsResolved() bool {
	return c.Status == ConversationStatusClosed
}

// HasParticipant kiểm tra user có trong danh sách tham gia không
func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	for _, id := range c.ParticipatedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasRead kiểm tra user đã đọc hội thoại chưa
func (c *Conversation) HasRead(userID primitive.ObjectID) bool {
	for _, id := range c.ReadUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
