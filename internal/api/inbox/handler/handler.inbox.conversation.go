// Package inboxhdl chứa các handler HTTP cho domain inbox.
package inboxhdl

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	authsvc "github.com/Alond/erxes-api/internal/api/auth/service"
	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/api/inbox/dto"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxquery "github.com/Alond/erxes-api/internal/api/inbox/query"
	inboxsvc "github.com/Alond/erxes-api/internal/api/inbox/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/utility"
)

// ConversationHandler xử lý các request liên quan đến hội thoại.
// Hội thoại chỉ được tạo bởi pipeline tiếp nhận, API chỉ đọc và
// thao tác workflow (phân công, trạng thái, đã đọc, sao, tham gia).
type ConversationHandler struct {
	*basehdl.BaseHandler[models.Conversation, dto.ConversationMarkAsReadInput, dto.ConversationChangeStatusInput]
	conversationService *inboxsvc.ConversationService
	userService         *authsvc.UserService
}

// NewConversationHandler tạo một instance mới của ConversationHandler
func NewConversationHandler() (*ConversationHandler, error) {
	conversationService, err := inboxsvc.NewConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[models.Conversation, dto.ConversationMarkAsReadInput, dto.ConversationChangeStatusInput](conversationService)
	return &ConversationHandler{
		BaseHandler:         baseHandler,
		conversationService: conversationService,
		userService:         userService,
	}, nil
}

// requestViewer lấy viewer từ context do middleware auth set
func requestViewer(c fiber.Ctx) (*authmodels.User, inboxquery.Viewer, error) {
	userVal := c.Locals("user")
	user, ok := userVal.(*authmodels.User)
	if !ok || user == nil {
		return nil, inboxquery.Viewer{}, common.NewError(common.ErrCodeAuthToken, "User not authenticated", common.StatusUnauthorized, nil)
	}

	starred := make([]string, 0, len(user.StarredConversationIDs))
	for _, id := range user.StarredConversationIDs {
		starred = append(starred, id.Hex())
	}

	return user, inboxquery.Viewer{
		ID:                     user.ID.Hex(),
		StarredConversationIDs: starred,
	}, nil
}

// parseListArgs đọc các tham số lọc từ query string
func parseListArgs(c fiber.Ctx) inboxquery.ConversationListArgs {
	splitCSV := func(s string) []string {
		if s == "" {
			return nil
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	return inboxquery.ConversationListArgs{
		ChannelID:       c.Query("channelId"),
		BrandID:         c.Query("brandId"),
		IntegrationType: c.Query("integrationType"),
		Status:          splitCSV(c.Query("status")),
		Unassigned:      c.Query("unassigned") == "true",
		Participating:   c.Query("participating") == "true",
		Starred:         c.Query("starred") == "true",
		TagID:           c.Query("tag"),
		IDs:             splitCSV(c.Query("ids")),
		Search:          c.Query("search"),
	}
}

// HandleList trả về trang hội thoại theo các filter của viewer
func (h *ConversationHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, viewer, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		builder, _, err := h.conversationService.BuildQueries(c.Context(), parseListArgs(c), viewer, user.IsAdmin())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		result, err := h.conversationService.List(c.Context(), builder, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDetail trả về một hội thoại theo id
func (h *ConversationHandler) HandleDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		conversation, err := h.conversationService.FindOneById(c.Context(), objID)
		h.HandleResponse(c, conversation, err)
		return nil
	})
}

// HandleTotalCount đếm tổng hội thoại match filter
func (h *ConversationHandler) HandleTotalCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, viewer, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		builder, _, err := h.conversationService.BuildQueries(c.Context(), parseListArgs(c), viewer, user.IsAdmin())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		total, err := h.conversationService.TotalCount(c.Context(), builder)
		h.HandleResponse(c, fiber.Map{"total": total}, err)
		return nil
	})
}

// HandleCounts trả về thống kê hội thoại theo mọi dimension
// (channel, brand, tag, loại integration và các khóa cố định)
func (h *ConversationHandler) HandleCounts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, viewer, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		builder, lookup, err := h.conversationService.BuildQueries(c.Context(), parseListArgs(c), viewer, user.IsAdmin())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		counts, err := h.conversationService.Counts(c.Context(), builder, lookup)
		h.HandleResponse(c, counts, err)
		return nil
	})
}

// HandleUnreadCount đếm hội thoại chưa đọc của viewer
func (h *ConversationHandler) HandleUnreadCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, viewer, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		n, err := h.conversationService.UnreadCount(c.Context(), viewer, user.IsAdmin())
		h.HandleResponse(c, fiber.Map{"unreadCount": n}, err)
		return nil
	})
}

// HandleAssign phân công các hội thoại cho một user
func (h *ConversationHandler) HandleAssign(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ConversationAssignInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		assignedUserID := utility.String2ObjectID(input.AssignedUserID)
		modified, err := h.conversationService.Assign(c.Context(), input.ConversationIDs, assignedUserID)
		h.HandleResponse(c, fiber.Map{"modifiedCount": modified}, err)
		return nil
	})
}

// HandleUnassign bỏ phân công các hội thoại
func (h *ConversationHandler) HandleUnassign(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ConversationUnassignInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		modified, err := h.conversationService.Unassign(c.Context(), input.ConversationIDs)
		h.HandleResponse(c, fiber.Map{"modifiedCount": modified}, err)
		return nil
	})
}

// HandleChangeStatus đổi trạng thái các hội thoại
func (h *ConversationHandler) HandleChangeStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ConversationChangeStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		modified, err := h.conversationService.ChangeStatus(c.Context(), input.ConversationIDs, input.Status)
		h.HandleResponse(c, fiber.Map{"modifiedCount": modified}, err)
		return nil
	})
}

// HandleMarkAsRead đánh dấu viewer đã đọc hội thoại
func (h *ConversationHandler) HandleMarkAsRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, _, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		conversation, err := h.conversationService.MarkAsRead(c.Context(), objID, user.ID)
		h.HandleResponse(c, conversation, err)
		return nil
	})
}

// HandleToggleParticipation thêm/bớt viewer khỏi danh sách tham gia hội thoại
func (h *ConversationHandler) HandleToggleParticipation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, _, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		conversation, err := h.conversationService.ToggleParticipation(c.Context(), objID, user.ID)
		h.HandleResponse(c, conversation, err)
		return nil
	})
}

// HandleStar đánh dấu sao hội thoại cho viewer. Trạng thái sao nằm trên user,
// không nằm trên hội thoại.
func (h *ConversationHandler) HandleStar(c fiber.Ctx) error {
	return h.toggleStar(c, true)
}

// HandleUnstar bỏ đánh dấu sao hội thoại cho viewer
func (h *ConversationHandler) HandleUnstar(c fiber.Ctx) error {
	return h.toggleStar(c, false)
}

func (h *ConversationHandler) toggleStar(c fiber.Ctx, star bool) error {
	return h.SafeHandler(c, func() error {
		user, _, err := requestViewer(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objID := utility.String2ObjectID(c.Params("id"))
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		// Hội thoại phải tồn tại trước khi đánh dấu sao
		if _, err := h.conversationService.FindOneById(c.Context(), objID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var updated authmodels.User
		if star {
			updated, err = h.userService.StarConversation(c.Context(), user.ID, objID)
		} else {
			updated, err = h.userService.UnstarConversation(c.Context(), user.ID, objID)
		}
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		starred := make([]primitive.ObjectID, 0, len(updated.StarredConversationIDs))
		starred = append(starred, updated.StarredConversationIDs...)
		h.HandleResponse(c, fiber.Map{"starredConversationIds": starred}, nil)
		return nil
	})
}
