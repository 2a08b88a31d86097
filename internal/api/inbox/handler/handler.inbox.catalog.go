package inboxhdl

import (
	"fmt"

	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/api/inbox/dto"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxsvc "github.com/Alond/erxes-api/internal/api/inbox/service"
)

// Các handler catalog (integration / brand / tag) chỉ cần CRUD chuẩn,
// không có route nghiệp vụ riêng nên chỉ embed BaseHandler.

// IntegrationHandler xử lý các request liên quan đến integration
type IntegrationHandler struct {
	*basehdl.BaseHandler[models.Integration, dto.IntegrationCreateInput, dto.IntegrationUpdateInput]
}

// NewIntegrationHandler tạo một instance mới của IntegrationHandler
func NewIntegrationHandler() (*IntegrationHandler, error) {
	integrationService, err := inboxsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}

	return &IntegrationHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Integration, dto.IntegrationCreateInput, dto.IntegrationUpdateInput](integrationService),
	}, nil
}

// BrandHandler xử lý các request liên quan đến brand
type BrandHandler struct {
	*basehdl.BaseHandler[models.Brand, dto.BrandCreateInput, dto.BrandUpdateInput]
}

// NewBrandHandler tạo một instance mới của BrandHandler
func NewBrandHandler() (*BrandHandler, error) {
	brandService, err := inboxsvc.NewBrandService()
	if err != nil {
		return nil, fmt.Errorf("failed to create brand service: %v", err)
	}

	return &BrandHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Brand, dto.BrandCreateInput, dto.BrandUpdateInput](brandService),
	}, nil
}

// TagHandler xử lý các request liên quan đến tag
type TagHandler struct {
	*basehdl.BaseHandler[models.Tag, dto.TagCreateInput, dto.TagUpdateInput]
}

// NewTagHandler tạo một instance mới của TagHandler
func NewTagHandler() (*TagHandler, error) {
	tagService, err := inboxsvc.NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}

	return &TagHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Tag, dto.TagCreateInput, dto.TagUpdateInput](tagService),
	}, nil
}
