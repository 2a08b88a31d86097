package inboxsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alond/erxes-api/internal/api/inbox/models"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/utility"
)

// channelStore là phần ChannelService mà lookup cần
type channelStore interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Channel, error)
	FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Channel, error)
}

// integrationStore là phần IntegrationService mà lookup cần
type integrationStore interface {
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
}

// IntegrationLookupMongo hiện thực inboxquery.IntegrationLookup trên MongoDB.
// Unrestricted dành cho admin: sàn quyền trả về nil (không ràng buộc).
type IntegrationLookupMongo struct {
	channelService     channelStore
	integrationService integrationStore
	unrestricted       bool
}

// NewIntegrationLookup tạo lookup mới; unrestricted = true cho admin
func NewIntegrationLookup(channelService *ChannelService, integrationService *IntegrationService, unrestricted bool) *IntegrationLookupMongo {
	return &IntegrationLookupMongo{
		channelService:     channelService,
		integrationService: integrationService,
		unrestricted:       unrestricted,
	}
}

// IntegrationIDsByChannel trả về integration id của channel.
// Channel không tồn tại hoặc id sai định dạng cho ra tập rỗng, không lỗi.
// Lỗi hạ tầng thì truyền nguyên vẹn cho caller, không được thu hẹp về tập rỗng.
func (l *IntegrationLookupMongo) IntegrationIDsByChannel(ctx context.Context, channelID string) ([]string, error) {
	objID := utility.String2ObjectID(channelID)
	if objID.IsZero() {
		return []string{}, nil
	}

	channel, err := l.channelService.FindOneById(ctx, objID)
	if errors.Is(err, common.ErrNotFound) {
		// Không tìm thấy channel: thu hẹp về tập rỗng thay vì lỗi
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(channel.IntegrationIDs))
	for _, id := range channel.IntegrationIDs {
		ids = append(ids, id.Hex())
	}
	return ids, nil
}

// IntegrationIDsByKind trả về integration id theo kind qua distinct
func (l *IntegrationLookupMongo) IntegrationIDsByKind(ctx context.Context, kind string) ([]string, error) {
	return l.distinctIntegrationIDs(ctx, bson.M{"kind": kind})
}

// IntegrationIDsByBrand trả về integration id thuộc brand
func (l *IntegrationLookupMongo) IntegrationIDsByBrand(ctx context.Context, brandID string) ([]string, error) {
	objID := utility.String2ObjectID(brandID)
	if objID.IsZero() {
		return []string{}, nil
	}
	return l.distinctIntegrationIDs(ctx, bson.M{"brandId": objID})
}

// IntegrationIDsVisibleTo trả về các integration viewer được nhìn thấy
// qua các channel viewer là thành viên. Admin không bị ràng buộc.
func (l *IntegrationLookupMongo) IntegrationIDsVisibleTo(ctx context.Context, viewerID string) ([]string, error) {
	if l.unrestricted {
		return nil, nil
	}

	objID := utility.String2ObjectID(viewerID)
	if objID.IsZero() {
		return []string{}, nil
	}

	channels, err := l.channelService.FindByMember(ctx, objID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, ch := range channels {
		for _, id := range ch.IntegrationIDs {
			ids = append(ids, id.Hex())
		}
	}
	return utility.UniqueStrings(ids), nil
}

// distinctIntegrationIDs chạy distinct trên _id của collection integrations
func (l *IntegrationLookupMongo) distinctIntegrationIDs(ctx context.Context, filter bson.M) ([]string, error) {
	values, err := l.integrationService.Distinct(ctx, "_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if objID, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, objID.Hex())
		}
	}
	return ids, nil
}
