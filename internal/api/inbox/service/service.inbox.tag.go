package inboxsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// TagService là cấu trúc chứa các phương thức liên quan đến tag
type TagService struct {
	*basesvc.BaseServiceMongoImpl[models.Tag]
}

// NewTagService tạo mới TagService
func NewTagService() (*TagService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tags)
	if !exist {
		return nil, fmt.Errorf("failed to get tags collection: %v", common.ErrNotFound)
	}
	return &TagService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tag](coll),
	}, nil
}

// TagIDsByType trả về id (hex) của mọi tag trong một phân vùng.
// Thống kê theo tag chỉ được liệt kê tag trong đúng phân vùng của đối tượng.
func (s *TagService) TagIDsByType(ctx context.Context, tagType string) ([]string, error) {
	tags, err := s.Find(ctx, bson.M{"type": tagType}, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID.Hex())
	}
	return ids, nil
}
