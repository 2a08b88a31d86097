// Package models - model engage message (tin nhắn chủ động gửi tới khách hàng).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại engage message (closed enum)
const (
	EngageKindAuto        = "auto"        // Gửi tự động theo segment
	EngageKindVisitorAuto = "visitorAuto" // Gửi tự động cho visitor
	EngageKindManual      = "manual"      // Gửi thủ công
)

// EngageKinds là tập loại engage hợp lệ
var EngageKinds = []string{
	EngageKindAuto,
	EngageKindVisitorAuto,
	EngageKindManual,
}

// Trạng thái ảo của engage message, suy ra từ các cờ isLive/isDraft
// và người tạo, không lưu trực tiếp trong document.
const (
	EngageStatusLive   = "live"   // isLive = true
	EngageStatusDraft  = "draft"  // isDraft = true
	EngageStatusPaused = "paused" // isLive = false
	EngageStatusYours  = "yours"  // fromUserId = viewer
)

// EngageStatuses là tập trạng thái ảo
var EngageStatuses = []string{
	EngageStatusLive,
	EngageStatusDraft,
	EngageStatusPaused,
	EngageStatusYours,
}

// EngageMessage là một chiến dịch nhắn tin chủ động.
type EngageMessage struct {
	ID         primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`           // ID của engage message
	Title      string               `json:"title" bson:"title" index:"text"`             // Tiêu đề chiến dịch
	Kind       string               `json:"kind" bson:"kind" index:"single:1"`           // Loại: auto | visitorAuto | manual
	IsLive     bool                 `json:"isLive" bson:"isLive" index:"single:1"`       // Đang chạy
	IsDraft    bool                 `json:"isDraft" bson:"isDraft"`                      // Còn là bản nháp
	FromUserID primitive.ObjectID   `json:"fromUserId" bson:"fromUserId" index:"single:1"` // User tạo chiến dịch
	SegmentIDs []string             `json:"segmentIds,omitempty" bson:"segmentIds,omitempty"` // Các segment khách hàng nhắm tới
	BrandID    primitive.ObjectID   `json:"brandId,omitempty" bson:"brandId,omitempty"`  // Brand của chiến dịch
	TagIDs     []primitive.ObjectID `json:"tagIds" bson:"tagIds"`                        // Các tag (phân vùng engageMessage)
	CreatedAt  int64                `json:"createdAt" bson:"createdAt"`                  // Thời gian tạo
	UpdatedAt  int64                `json:"updatedAt" bson:"updatedAt"`                  // Thời gian cập nhật
}
