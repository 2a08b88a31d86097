package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag là nhãn gắn vào các đối tượng, phân vùng theo Type.
// Thống kê theo tag chỉ liệt kê tag trong đúng phân vùng của đối tượng.
type Tag struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`      // ID của tag
	Name      string             `json:"name" bson:"name" index:"text"`          // Tên tag
	Type      string             `json:"type" bson:"type" index:"single:1"`      // Phân vùng: conversation | customer | company | engageMessage | integration
	ColorCode string             `json:"colorCode,omitempty" bson:"colorCode,omitempty"` // Mã màu hiển thị
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`             // Thời gian tạo
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`             // Thời gian cập nhật
}
