package inboxsvc

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alond/erxes-api/internal/api/inbox/models"
	"github.com/Alond/erxes-api/internal/common"
)

// fakeChannelStore giả lập channelStore từ dữ liệu cố định trong bộ nhớ
type fakeChannelStore struct {
	channels map[primitive.ObjectID]models.Channel
	byMember []models.Channel
	err      error // lỗi hạ tầng, trả về cho mọi lời gọi
}

func (f *fakeChannelStore) FindOneById(_ context.Context, id primitive.ObjectID) (models.Channel, error) {
	if f.err != nil {
		return models.Channel{}, f.err
	}
	ch, ok := f.channels[id]
	if !ok {
		return models.Channel{}, common.ErrNotFound
	}
	return ch, nil
}

func (f *fakeChannelStore) FindByMember(_ context.Context, _ primitive.ObjectID) ([]models.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byMember, nil
}

func TestIntegrationIDsByChannelReturnsHexIDs(t *testing.T) {
	channelID := primitive.NewObjectID()
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()

	lookup := &IntegrationLookupMongo{channelService: &fakeChannelStore{
		channels: map[primitive.ObjectID]models.Channel{
			channelID: {ID: channelID, IntegrationIDs: []primitive.ObjectID{i1, i2}},
		},
	}}

	ids, err := lookup.IntegrationIDsByChannel(context.Background(), channelID.Hex())
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{i1.Hex(), i2.Hex()}) {
		t.Errorf("danh sách integration sai: %v", ids)
	}
}

func TestIntegrationIDsByChannelNotFoundNarrowsToEmpty(t *testing.T) {
	lookup := &IntegrationLookupMongo{channelService: &fakeChannelStore{
		channels: map[primitive.ObjectID]models.Channel{},
	}}

	ids, err := lookup.IntegrationIDsByChannel(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("channel không tồn tại phải thu hẹp về tập rỗng, không lỗi: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("muốn tập rỗng không nil, nhận được %v", ids)
	}

	// Id sai định dạng cũng thu hẹp về tập rỗng
	ids, err = lookup.IntegrationIDsByChannel(context.Background(), "not-a-hex-id")
	if err != nil || len(ids) != 0 {
		t.Errorf("id sai định dạng phải cho tập rỗng không lỗi, nhận được %v, %v", ids, err)
	}
}

func TestIntegrationIDsByChannelPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("server selection timeout")
	lookup := &IntegrationLookupMongo{channelService: &fakeChannelStore{err: storeErr}}

	ids, err := lookup.IntegrationIDsByChannel(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, storeErr) {
		t.Fatalf("lỗi hạ tầng phải được truyền nguyên vẹn, nhận được %v", err)
	}
	// Lỗi hạ tầng không bao giờ được thu hẹp về predicate không-match-gì
	if ids != nil {
		t.Errorf("khi lỗi không được trả về danh sách id: %v", ids)
	}
}

func TestIntegrationIDsVisibleToPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	lookup := &IntegrationLookupMongo{channelService: &fakeChannelStore{err: storeErr}}

	_, err := lookup.IntegrationIDsVisibleTo(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, storeErr) {
		t.Fatalf("lỗi hạ tầng phải được truyền nguyên vẹn, nhận được %v", err)
	}
}

func TestIntegrationIDsVisibleToDeduplicates(t *testing.T) {
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()

	lookup := &IntegrationLookupMongo{channelService: &fakeChannelStore{
		byMember: []models.Channel{
			{ID: primitive.NewObjectID(), IntegrationIDs: []primitive.ObjectID{i1, i2}},
			{ID: primitive.NewObjectID(), IntegrationIDs: []primitive.ObjectID{i2}},
		},
	}}

	ids, err := lookup.IntegrationIDsVisibleTo(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{i1.Hex(), i2.Hex()}) {
		t.Errorf("integration trùng giữa các channel phải được khử: %v", ids)
	}
}
