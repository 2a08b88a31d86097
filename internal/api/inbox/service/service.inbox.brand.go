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

// BrandService là cấu trúc chứa các phương thức liên quan đến brand
type BrandService struct {
	*basesvc.BaseServiceMongoImpl[models.Brand]
}

// NewBrandService tạo mới BrandService
func NewBrandService() (*BrandService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Brands)
	if !exist {
		return nil, fmt.Errorf("failed to get brands collection: %v", common.ErrNotFound)
	}
	return &BrandService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Brand](coll),
	}, nil
}

// BrandIDs trả về id (hex) của mọi brand hiện có, dùng cho thống kê theo brand
func (s *BrandService) BrandIDs(ctx context.Context) ([]string, error) {
	brands, err := s.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(brands))
	for _, b := range brands {
		ids = append(ids, b.ID.Hex())
	}
	return ids, nil
}
