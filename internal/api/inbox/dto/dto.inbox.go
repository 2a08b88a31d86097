// Package dto - các input DTO cho domain inbox.
package dto

// ChannelCreateInput dữ liệu đầu vào khi tạo channel
type ChannelCreateInput struct {
	Name           string   `json:"name" validate:"required,min=1,max=100,no_xss"`
	Description    string   `json:"description,omitempty" validate:"omitempty,max=500,no_xss"`
	MemberIDs      []string `json:"memberIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
	IntegrationIDs []string `json:"integrationIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}

// ChannelUpdateInput dữ liệu đầu vào khi cập nhật channel
type ChannelUpdateInput struct {
	Name           string   `json:"name,omitempty" validate:"omitempty,min=1,max=100,no_xss"`
	Description    string   `json:"description,omitempty" validate:"omitempty,max=500,no_xss"`
	MemberIDs      []string `json:"memberIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
	IntegrationIDs []string `json:"integrationIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}

// IntegrationCreateInput dữ liệu đầu vào khi tạo integration
type IntegrationCreateInput struct {
	Name    string   `json:"name" validate:"required,min=1,max=100,no_xss"`
	Kind    string   `json:"kind" validate:"required,oneof=messenger form twitter facebook"`
	BrandID string   `json:"brandId" validate:"required,object_id" transform:"str_objectid"`
	TagIDs  []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}

// IntegrationUpdateInput dữ liệu đầu vào khi cập nhật integration
type IntegrationUpdateInput struct {
	Name    string   `json:"name,omitempty" validate:"omitempty,min=1,max=100,no_xss"`
	Kind    string   `json:"kind,omitempty" validate:"omitempty,oneof=messenger form twitter facebook"`
	BrandID string   `json:"brandId,omitempty" validate:"omitempty,object_id" transform:"str_objectid,optional"`
	TagIDs  []string `json:"tagIds,omitempty" validate:"omitempty,dive,object_id" transform:"str_objectid_arr,optional"`
}

// BrandCreateInput dữ liệu đầu vào khi tạo brand
type BrandCreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100,no_xss"`
	Code        string `json:"code" validate:"required,min=1,max=50,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500,no_xss"`
}

// BrandUpdateInput dữ liệu đầu vào khi cập nhật brand
type BrandUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500,no_xss"`
}

// TagCreateInput dữ liệu đầu vào khi tạo tag
type TagCreateInput struct {
	Name      string `json:"name" validate:"required,min=1,max=100,no_xss"`
	Type      string `json:"type" validate:"required,oneof=conversation customer company engageMessage integration"`
	ColorCode string `json:"colorCode,omitempty" validate:"omitempty,max=10,no_xss"`
}

// TagUpdateInput dữ liệu đầu vào khi cập nhật tag
type TagUpdateInput struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=1,max=100,no_xss"`
	ColorCode string `json:"colorCode,omitempty" validate:"omitempty,max=10,no_xss"`
}

// ConversationAssignInput dữ liệu đầu vào khi phân công hội thoại
type ConversationAssignInput struct {
	ConversationIDs []string `json:"conversationIds" validate:"required,min=1,dive,object_id"`
	AssignedUserID  string   `json:"assignedUserId" validate:"required,object_id"`
}

// ConversationUnassignInput dữ liệu đầu vào khi bỏ phân công
type ConversationUnassignInput struct {
	ConversationIDs []string `json:"conversationIds" validate:"required,min=1,dive,object_id"`
}

// ConversationChangeStatusInput dữ liệu đầu vào khi đổi trạng thái
type ConversationChangeStatusInput struct {
	ConversationIDs []string `json:"conversationIds" validate:"required,min=1,dive,object_id"`
	Status          string   `json:"status" validate:"required,oneof=new open closed"`
}

// ConversationMarkAsReadInput dữ liệu đầu vào khi đánh dấu đã đọc
type ConversationMarkAsReadInput struct {
	ConversationID string `json:"conversationId" validate:"required,object_id"`
}
