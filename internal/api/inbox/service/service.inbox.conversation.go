package inboxsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/Alond/erxes-api/internal/api/base/models"
	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxquery "github.com/Alond/erxes-api/internal/api/inbox/query"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
	"github.com/Alond/erxes-api/internal/utility"
)

// ConversationService là cấu trúc chứa các phương thức liên quan đến hội thoại.
// Service này đồng thời hiện thực inboxquery.Counter cho engine thống kê.
type ConversationService struct {
	*basesvc.BaseServiceMongoImpl[models.Conversation]

	channelService     *ChannelService
	integrationService *IntegrationService
	tagService         *TagService
	brandService       *BrandService
}

// NewConversationService tạo mới ConversationService cùng các service phụ thuộc
func NewConversationService() (*ConversationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Conversations)
	if !exist {
		return nil, fmt.Errorf("failed to get conversations collection: %v", common.ErrNotFound)
	}

	channelService, err := NewChannelService()
	if err != nil {
		return nil, err
	}
	integrationService, err := NewIntegrationService()
	if err != nil {
		return nil, err
	}
	tagService, err := NewTagService()
	if err != nil {
		return nil, err
	}
	brandService, err := NewBrandService()
	if err != nil {
		return nil, err
	}

	return &ConversationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Conversation](coll),
		channelService:       channelService,
		integrationService:   integrationService,
		tagService:           tagService,
		brandService:         brandService,
	}, nil
}

// CountConversations hiện thực inboxquery.Counter
func (s *ConversationService) CountConversations(ctx context.Context, filter bson.M) (int64, error) {
	return s.CountDocuments(ctx, filter)
}

// Lookup tạo IntegrationLookup cho một viewer; admin không bị giới hạn sàn quyền
func (s *ConversationService) Lookup(unrestricted bool) *IntegrationLookupMongo {
	return NewIntegrationLookup(s.channelService, s.integrationService, unrestricted)
}

// BuildQueries tạo builder từ args + viewer và resolve toàn bộ sub-predicate
func (s *ConversationService) BuildQueries(ctx context.Context, args inboxquery.ConversationListArgs, viewer inboxquery.Viewer, unrestricted bool) (*inboxquery.Builder, *IntegrationLookupMongo, error) {
	lookup := s.Lookup(unrestricted)
	builder := inboxquery.NewBuilder(args, viewer, lookup)
	if err := builder.BuildAllQueries(ctx); err != nil {
		return nil, nil, err
	}
	return builder, lookup, nil
}

// List trả về trang hội thoại match main query, mới nhất trước
func (s *ConversationService) List(ctx context.Context, builder *inboxquery.Builder, page, limit int64) (*basemodels.PaginateResult[models.Conversation], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, builder.MainQuery().ToBson(), page, limit, opts)
}

// TotalCount đếm tổng số hội thoại match main query
func (s *ConversationService) TotalCount(ctx context.Context, builder *inboxquery.Builder) (int64, error) {
	return s.CountDocuments(ctx, builder.MainQuery().ToBson())
}

// ConversationCountsResult là kết quả thống kê theo mọi dimension
type ConversationCountsResult struct {
	ByChannels         basemodels.FacetCounts `json:"byChannels"`
	ByBrands           basemodels.FacetCounts `json:"byBrands"`
	ByTags             basemodels.FacetCounts `json:"byTags"`
	ByIntegrationTypes basemodels.FacetCounts `json:"byIntegrationTypes"`
	Fixed              basemodels.FacetCounts `json:"fixed"`
}

// Counts chạy toàn bộ thống kê theo dimension. Một count lỗi thì toàn bộ lỗi.
func (s *ConversationService) Counts(ctx context.Context, builder *inboxquery.Builder, lookup *IntegrationLookupMongo) (*ConversationCountsResult, error) {
	engine := inboxquery.NewCountEngine(s, builder, lookup, global.ServerConfig.CountConcurrency)

	channels, err := s.channelService.ChannelRefs(ctx)
	if err != nil {
		return nil, err
	}
	byChannels, err := engine.CountByChannels(ctx, channels)
	if err != nil {
		return nil, err
	}

	brandIDs, err := s.brandService.BrandIDs(ctx)
	if err != nil {
		return nil, err
	}
	byBrands, err := engine.CountByBrands(ctx, brandIDs)
	if err != nil {
		return nil, err
	}

	// Chỉ tag thuộc phân vùng conversation được liệt kê
	tagIDs, err := s.tagService.TagIDsByType(ctx, models.TagTypeConversation)
	if err != nil {
		return nil, err
	}
	byTags, err := engine.CountByTags(ctx, tagIDs)
	if err != nil {
		return nil, err
	}

	byTypes, err := engine.CountByIntegrationTypes(ctx)
	if err != nil {
		return nil, err
	}

	fixed, err := engine.FixedCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &ConversationCountsResult{
		ByChannels:         byChannels,
		ByBrands:           byBrands,
		ByTags:             byTags,
		ByIntegrationTypes: byTypes,
		Fixed:              fixed,
	}, nil
}

// ChannelConversationCounts đếm số hội thoại của từng channel (không filter),
// song song có giới hạn như các thống kê khác. Khóa của map là id channel.
func (s *ConversationService) ChannelConversationCounts(ctx context.Context, channels []models.Channel) (basemodels.FacetCounts, error) {
	refs := make([]inboxquery.ChannelRef, 0, len(channels))
	for _, ch := range channels {
		ids := make([]string, 0, len(ch.IntegrationIDs))
		for _, id := range ch.IntegrationIDs {
			ids = append(ids, id.Hex())
		}
		refs = append(refs, inboxquery.ChannelRef{ID: ch.ID.Hex(), IntegrationIDs: ids})
	}

	// Không sàn quyền, không filter: main query là match-all
	lookup := s.Lookup(true)
	builder := inboxquery.NewBuilder(inboxquery.ConversationListArgs{}, inboxquery.Viewer{}, lookup)
	if err := builder.BuildAllQueries(ctx); err != nil {
		return nil, err
	}

	engine := inboxquery.NewCountEngine(s, builder, lookup, global.ServerConfig.CountConcurrency)
	return engine.CountByChannels(ctx, refs)
}

// UnreadCount đếm hội thoại chưa đọc của viewer theo shortcut (không build toàn bộ query)
func (s *ConversationService) UnreadCount(ctx context.Context, viewer inboxquery.Viewer, unrestricted bool) (int64, error) {
	lookup := s.Lookup(unrestricted)
	builder := inboxquery.NewBuilder(inboxquery.ConversationListArgs{}, viewer, lookup)
	if err := builder.BuildFloor(ctx); err != nil {
		return 0, err
	}

	engine := inboxquery.NewCountEngine(s, builder, lookup, 1)
	return engine.UnreadCount(ctx)
}

// Assign phân công các hội thoại cho một user
func (s *ConversationService) Assign(ctx context.Context, conversationIDs []string, assignedUserID primitive.ObjectID) (int64, error) {
	objIDs := utility.StringArray2ObjectIDArray(conversationIDs)
	if len(objIDs) == 0 {
		return 0, common.ErrInvalidInput
	}

	return s.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objIDs}},
		&basesvc.UpdateData{Set: map[string]interface{}{"assignedUserId": assignedUserID}},
		nil,
	)
}

// Unassign bỏ phân công các hội thoại
func (s *ConversationService) Unassign(ctx context.Context, conversationIDs []string) (int64, error) {
	objIDs := utility.StringArray2ObjectIDArray(conversationIDs)
	if len(objIDs) == 0 {
		return 0, common.ErrInvalidInput
	}

	return s.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objIDs}},
		&basesvc.UpdateData{Unset: map[string]interface{}{"assignedUserId": ""}},
		nil,
	)
}

// ChangeStatus đổi trạng thái các hội thoại
func (s *ConversationService) ChangeStatus(ctx context.Context, conversationIDs []string, status string) (int64, error) {
	if !models.IsValidConversationStatus(status) {
		return 0, common.ErrInvalidState
	}

	objIDs := utility.StringArray2ObjectIDArray(conversationIDs)
	if len(objIDs) == 0 {
		return 0, common.ErrInvalidInput
	}

	return s.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objIDs}},
		&basesvc.UpdateData{Set: map[string]interface{}{"status": status}},
		nil,
	)
}

// MarkAsRead thêm viewer vào danh sách đã đọc của hội thoại (idempotent)
func (s *ConversationService) MarkAsRead(ctx context.Context, conversationID, viewerID primitive.ObjectID) (models.Conversation, error) {
	return s.UpdateById(ctx, conversationID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"readUserIds": viewerID},
	})
}

// ToggleParticipation thêm hoặc bớt viewer khỏi danh sách tham gia hội thoại
func (s *ConversationService) ToggleParticipation(ctx context.Context, conversationID, viewerID primitive.ObjectID) (models.Conversation, error) {
	conversation, err := s.FindOneById(ctx, conversationID)
	if err != nil {
		return conversation, err
	}

	update := &basesvc.UpdateData{}
	if conversation.HasParticipant(viewerID) {
		update.Pull = map[string]interface{}{"participatedUserIds": viewerID}
	} else {
		update.AddToSet = map[string]interface{}{"participatedUserIds": viewerID}
	}

	return s.UpdateById(ctx, conversationID, update)
}
