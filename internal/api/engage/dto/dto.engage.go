// Package dto - các input DTO cho domain engage.
package dto

// EngageMessageCreateInput dữ liệu đầu vào khi tạo engage message.
// Chiến dịch mới luôn là bản nháp; dùng set-live để kích hoạt.
type EngageMessageCreateInput struct {
	Title      string   `json:"title" validate:"required,min=1,max=200,no_xss"`
	Kind       string   `json:"kind" validate:"required,oneof=auto visitorAuto manual"`
	FromUserID string   `json:"fromUserId" validate:"required,object_id" transform:"str_objectid"`
	SegmentIDs []string `json:"segmentIds,omitempty" validate:"omitempty,dive,max=100"`
	BrandID    string   `json:"brandId,omitempty" validate:"omitempty,object_id" transform:"str_objectid,optional"`
	TagIDs     []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
	IsDraft    bool     `json:"isDraft"`
}

// EngageMessageUpdateInput dữ liệu đầu vào khi cập nhật engage message
type EngageMessageUpdateInput struct {
	Title      string   `json:"title,omitempty" validate:"omitempty,min=1,max=200,no_xss"`
	SegmentIDs []string `json:"segmentIds,omitempty" validate:"omitempty,dive,max=100"`
	BrandID    string   `json:"brandId,omitempty" validate:"omitempty,object_id" transform:"str_objectid,optional"`
	TagIDs     []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}
