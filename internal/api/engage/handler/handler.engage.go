// Package engagehdl chứa các handler HTTP cho domain engage.
package engagehdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/api/engage/dto"
	"github.com/Alond/erxes-api/internal/api/engage/models"
	engagesvc "github.com/Alond/erxes-api/internal/api/engage/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/utility"
)

// EngageMessageHandler xử lý các request liên quan đến engage message
type EngageMessageHandler struct {
	*basehdl.BaseHandler[models.EngageMessage, dto.EngageMessageCreateInput, dto.EngageMessageUpdateInput]
	engageService *engagesvc.EngageMessageService
}

// NewEngageMessageHandler tạo một instance mới của EngageMessageHandler
func NewEngageMessageHandler() (*EngageMessageHandler, error) {
	engageService, err := engagesvc.NewEngageMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create engage message service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[models.EngageMessage, dto.EngageMessageCreateInput, dto.EngageMessageUpdateInput](engageService)
	return &EngageMessageHandler{
		BaseHandler:   baseHandler,
		engageService: engageService,
	}, nil
}

// HandleSetLive kích hoạt chiến dịch
func (h *EngageMessageHandler) HandleSetLive(c fiber.Ctx) error {
	return h.mutateByID(c, h.engageService.SetLive)
}

// HandleSetPause tạm dừng chiến dịch
func (h *EngageMessageHandler) HandleSetPause(c fiber.Ctx) error {
	return h.mutateByID(c, h.engageService.SetPause)
}

// HandleSetLiveManual kích hoạt chiến dịch thủ công
func (h *EngageMessageHandler) HandleSetLiveManual(c fiber.Ctx) error {
	return h.mutateByID(c, h.engageService.SetLiveManual)
}

func (h *EngageMessageHandler) mutateByID(c fiber.Ctx, mutate func(context.Context, primitive.ObjectID) (models.EngageMessage, error)) error {
	return h.SafeHandler(c, func() error {
		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		message, err := mutate(c.Context(), objID)
		h.HandleResponse(c, message, err)
		return nil
	})
}

// HandleCounts trả về thống kê engage message theo kind, trạng thái ảo và tag
func (h *EngageMessageHandler) HandleCounts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userVal := c.Locals("user")
		user, ok := userVal.(*authmodels.User)
		if !ok || user == nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuthToken, "User not authenticated", common.StatusUnauthorized, nil))
			return nil
		}

		byKind, err := h.engageService.CountsByKind(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		byStatus, err := h.engageService.CountsByStatus(c.Context(), user.ID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		byTag, err := h.engageService.CountsByTag(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, fiber.Map{
			"byKind":   byKind,
			"byStatus": byStatus,
			"byTag":    byTag,
		}, nil)
		return nil
	})
}
