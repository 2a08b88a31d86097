// Package models - model công ty thuộc domain contacts.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company đại diện cho một công ty khách hàng.
type Company struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`      // ID của công ty
	Name      string               `json:"name" bson:"name" index:"text"`          // Tên công ty
	Website   string               `json:"website,omitempty" bson:"website,omitempty"`
	Plan      string               `json:"plan,omitempty" bson:"plan,omitempty"`   // Gói dịch vụ
	TagIDs    []primitive.ObjectID `json:"tagIds" bson:"tagIds" index:"single:1"`  // Các tag (phân vùng company)
	CreatedAt int64                `json:"createdAt" bson:"createdAt"`             // Thời gian tạo
	UpdatedAt int64                `json:"updatedAt" bson:"updatedAt"`             // Thời gian cập nhật
}
