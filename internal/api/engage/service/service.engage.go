// Package engagesvc chứa logic nghiệp vụ của domain engage.
package engagesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "github.com/Alond/erxes-api/internal/api/base/models"
	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/engage/models"
	inboxmodels "github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxsvc "github.com/Alond/erxes-api/internal/api/inbox/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// EngageMessageService là cấu trúc chứa các phương thức liên quan đến engage message
type EngageMessageService struct {
	*basesvc.BaseServiceMongoImpl[models.EngageMessage]
	tagService *inboxsvc.TagService
}

// NewEngageMessageService tạo mới EngageMessageService
func NewEngageMessageService() (*EngageMessageService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EngageMessages)
	if !exist {
		return nil, fmt.Errorf("failed to get engage messages collection: %v", common.ErrNotFound)
	}

	tagService, err := inboxsvc.NewTagService()
	if err != nil {
		return nil, err
	}

	return &EngageMessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.EngageMessage](coll),
		tagService:           tagService,
	}, nil
}

// SetLive kích hoạt chiến dịch: isLive = true, isDraft = false
func (s *EngageMessageService) SetLive(ctx context.Context, id primitive.ObjectID) (models.EngageMessage, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"isLive": true, "isDraft": false},
	})
}

// SetPause tạm dừng chiến dịch: isLive = false
func (s *EngageMessageService) SetPause(ctx context.Context, id primitive.ObjectID) (models.EngageMessage, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"isLive": false},
	})
}

// SetLiveManual kích hoạt chiến dịch thủ công; chỉ áp dụng cho kind manual
func (s *EngageMessageService) SetLiveManual(ctx context.Context, id primitive.ObjectID) (models.EngageMessage, error) {
	message, err := s.FindOneById(ctx, id)
	if err != nil {
		return message, err
	}
	if message.Kind != models.EngageKindManual {
		return message, common.NewError(common.ErrCodeBusinessState, "Chỉ chiến dịch thủ công mới được kích hoạt theo cách này", common.StatusBadRequest, nil)
	}
	return s.SetLive(ctx, id)
}

// statusFilter trả về filter tương ứng với một trạng thái ảo
func statusFilter(status string, viewerID primitive.ObjectID) bson.M {
	switch status {
	case models.EngageStatusLive:
		return bson.M{"isLive": true}
	case models.EngageStatusDraft:
		return bson.M{"isDraft": true}
	case models.EngageStatusPaused:
		return bson.M{"isLive": false}
	case models.EngageStatusYours:
		return bson.M{"fromUserId": viewerID}
	}
	return bson.M{"_id": bson.M{"$in": bson.A{}}}
}

// CountsByKind đếm engage message theo từng loại, mỗi loại một entry kể cả 0
func (s *EngageMessageService) CountsByKind(ctx context.Context) (basemodels.FacetCounts, error) {
	counts := make(basemodels.FacetCounts, len(models.EngageKinds))
	for _, kind := range models.EngageKinds {
		n, err := s.CountDocuments(ctx, bson.M{"kind": kind})
		if err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, nil
}

// CountsByStatus đếm engage message theo từng trạng thái ảo;
// trạng thái "yours" tính theo viewer hiện tại
func (s *EngageMessageService) CountsByStatus(ctx context.Context, viewerID primitive.ObjectID) (basemodels.FacetCounts, error) {
	counts := make(basemodels.FacetCounts, len(models.EngageStatuses))
	for _, status := range models.EngageStatuses {
		n, err := s.CountDocuments(ctx, statusFilter(status, viewerID))
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

// CountsByTag đếm engage message theo từng tag trong phân vùng engageMessage.
// Tag của phân vùng khác không bao giờ xuất hiện trong kết quả.
func (s *EngageMessageService) CountsByTag(ctx context.Context) (basemodels.FacetCounts, error) {
	tagIDs, err := s.tagService.TagIDsByType(ctx, inboxmodels.TagTypeEngageMessage)
	if err != nil {
		return nil, err
	}

	counts := make(basemodels.FacetCounts, len(tagIDs))
	for _, tagID := range tagIDs {
		objID, err := primitive.ObjectIDFromHex(tagID)
		if err != nil {
			continue
		}
		n, err := s.CountDocuments(ctx, bson.M{"tagIds": objID})
		if err != nil {
			return nil, err
		}
		counts[tagID] = n
	}
	return counts, nil
}
