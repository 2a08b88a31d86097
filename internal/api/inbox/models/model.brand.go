package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand đại diện cho một thương hiệu; mỗi integration thuộc về đúng một brand.
type Brand struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`       // ID của brand
	Name        string             `json:"name" bson:"name" index:"text"`           // Tên brand
	Code        string             `json:"code" bson:"code" index:"unique"`         // Mã định danh duy nhất của brand
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`              // Thời gian tạo
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`              // Thời gian cập nhật
}
