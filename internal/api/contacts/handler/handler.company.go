// Package contactshdl chứa các handler HTTP cho domain contacts.
package contactshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/api/contacts/dto"
	"github.com/Alond/erxes-api/internal/api/contacts/models"
	contactssvc "github.com/Alond/erxes-api/internal/api/contacts/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/utility"
)

// CompanyHandler xử lý các request liên quan đến công ty
type CompanyHandler struct {
	*basehdl.BaseHandler[models.Company, dto.CompanyCreateInput, dto.CompanyUpdateInput]
	companyService *contactssvc.CompanyService
}

// NewCompanyHandler tạo một instance mới của CompanyHandler
func NewCompanyHandler() (*CompanyHandler, error) {
	companyService, err := contactssvc.NewCompanyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[models.Company, dto.CompanyCreateInput, dto.CompanyUpdateInput](companyService)
	return &CompanyHandler{
		BaseHandler:    baseHandler,
		companyService: companyService,
	}, nil
}

// HandleList trả về trang công ty lọc theo tag và từ khóa tìm kiếm
func (h *CompanyHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.companyService.List(c.Context(), c.Query("tag"), c.Query("search"), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDetail trả về một công ty theo id
func (h *CompanyHandler) HandleDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		company, err := h.companyService.FindOneById(c.Context(), objID)
		h.HandleResponse(c, company, err)
		return nil
	})
}

// HandleCountsByTags trả về thống kê công ty theo tag trong phân vùng company
func (h *CompanyHandler) HandleCountsByTags(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		counts, err := h.companyService.CountsByTags(c.Context())
		h.HandleResponse(c, counts, err)
		return nil
	})
}
