// Package inboxsvc chứa logic nghiệp vụ của domain inbox.
package inboxsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	inboxquery "github.com/Alond/erxes-api/internal/api/inbox/query"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// ChannelService là cấu trúc chứa các phương thức liên quan đến channel
type ChannelService struct {
	*basesvc.BaseServiceMongoImpl[models.Channel]
}

// NewChannelService tạo mới ChannelService
func NewChannelService() (*ChannelService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Channels)
	if !exist {
		return nil, fmt.Errorf("failed to get channels collection: %v", common.ErrNotFound)
	}
	return &ChannelService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Channel](coll),
	}, nil
}

// FindByMember trả về các channel mà user là thành viên
func (s *ChannelService) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Channel, error) {
	return s.Find(ctx, bson.M{"memberIds": userID}, nil)
}

// ChannelRefs trả về dữ liệu tối thiểu của mọi channel cho engine thống kê:
// mỗi channel hiện có một entry, kể cả channel không có integration nào.
func (s *ChannelService) ChannelRefs(ctx context.Context) ([]inboxquery.ChannelRef, error) {
	channels, err := s.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}

	refs := make([]inboxquery.ChannelRef, 0, len(channels))
	for _, ch := range channels {
		ids := make([]string, 0, len(ch.IntegrationIDs))
		for _, id := range ch.IntegrationIDs {
			ids = append(ids, id.Hex())
		}
		refs = append(refs, inboxquery.ChannelRef{ID: ch.ID.Hex(), IntegrationIDs: ids})
	}
	return refs, nil
}
