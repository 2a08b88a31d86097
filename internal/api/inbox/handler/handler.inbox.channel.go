package inboxhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/api/inbox/dto"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxsvc "github.com/Alond/erxes-api/internal/api/inbox/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/utility"
)

// ChannelHandler xử lý các request liên quan đến channel
type ChannelHandler struct {
	*basehdl.BaseHandler[models.Channel, dto.ChannelCreateInput, dto.ChannelUpdateInput]
	channelService      *inboxsvc.ChannelService
	conversationService *inboxsvc.ConversationService
}

// NewChannelHandler tạo một instance mới của ChannelHandler
func NewChannelHandler() (*ChannelHandler, error) {
	channelService, err := inboxsvc.NewChannelService()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel service: %v", err)
	}

	conversationService, err := inboxsvc.NewConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[models.Channel, dto.ChannelCreateInput, dto.ChannelUpdateInput](channelService)
	return &ChannelHandler{
		BaseHandler:         baseHandler,
		channelService:      channelService,
		conversationService: conversationService,
	}, nil
}

// HandleByMember trả về các channel mà một user là thành viên.
// Không truyền memberId thì dùng viewer hiện tại.
func (h *ChannelHandler) HandleByMember(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		memberID := c.Query("memberId")
		if memberID == "" {
			if userID, ok := c.Locals("user_id").(string); ok {
				memberID = userID
			}
		}

		objID := utility.String2ObjectID(memberID)
		if objID.IsZero() {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		channels, err := h.channelService.FindByMember(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if channels == nil {
			channels = []models.Channel{}
		}

		// Đếm kèm số hội thoại của mỗi channel qua các integration thuộc channel
		counts, err := h.conversationService.ChannelConversationCounts(c.Context(), channels)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		for i := range channels {
			channels[i].ConversationCount = counts[channels[i].ID.Hex()]
		}

		h.HandleResponse(c, channels, nil)
		return nil
	})
}
