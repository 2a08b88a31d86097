package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Integration là một điểm tiếp nhận hội thoại (messenger, form, twitter, facebook).
// Mỗi integration thuộc về một brand và có thể được gắn tag.
type Integration struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`          // ID của integration
	Name      string               `json:"name" bson:"name" index:"text"`              // Tên integration
	Kind      string               `json:"kind" bson:"kind" index:"single:1"`          // Loại: messenger | form | twitter | facebook
	BrandID   primitive.ObjectID   `json:"brandId" bson:"brandId" index:"single:1"`    // Brand sở hữu integration
	TagIDs    []primitive.ObjectID `json:"tagIds" bson:"tagIds"`                       // Các tag gắn vào integration
	CreatedAt int64                `json:"createdAt" bson:"createdAt"`                 // Thời gian tạo
	UpdatedAt int64                `json:"updatedAt" bson:"updatedAt"`                 // Thời gian cập nhật
}
