package inboxquery

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basequery "github.com/Alond/erxes-api/internal/api/base/query"
)

// ----- Fakes -----

// fakeLookup giả lập IntegrationLookup từ các map cố định
type fakeLookup struct {
	byChannel map[string][]string
	byKind    map[string][]string
	byBrand   map[string][]string
	visible   []string // nil = không ràng buộc
	err       error
}

func (f *fakeLookup) IntegrationIDsByChannel(_ context.Context, channelID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := f.byChannel[channelID]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (f *fakeLookup) IntegrationIDsByKind(_ context.Context, kind string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := f.byKind[kind]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (f *fakeLookup) IntegrationIDsByBrand(_ context.Context, brandID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := f.byBrand[brandID]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (f *fakeLookup) IntegrationIDsVisibleTo(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.visible, nil
}

// fakeCounter đếm trên danh sách document trong bộ nhớ bằng một evaluator
// tối giản hỗ trợ đúng các operator mà predicate algebra render ra
type fakeCounter struct {
	docs     []map[string]interface{}
	failWhen func(filter bson.M) bool
}

func (f *fakeCounter) CountConversations(ctx context.Context, filter bson.M) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.failWhen != nil && f.failWhen(filter) {
		return 0, errors.New("count thất bại")
	}

	var n int64
	for _, doc := range f.docs {
		if matchesFilter(filter, doc) {
			n++
		}
	}
	return n, nil
}

func matchesFilter(filter bson.M, doc map[string]interface{}) bool {
	for key, cond := range filter {
		switch key {
		case "$and":
			for _, sub := range cond.(bson.A) {
				if !matchesFilter(sub.(bson.M), doc) {
					return false
				}
			}
		case "$or":
			matched := false
			for _, sub := range cond.(bson.A) {
				if matchesFilter(sub.(bson.M), doc) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		default:
			if !matchesField(doc, key, cond) {
				return false
			}
		}
	}
	return true
}

func matchesField(doc map[string]interface{}, field string, cond interface{}) bool {
	value, exists := doc[field]

	if ops, ok := cond.(bson.M); ok && hasOperator(ops) {
		for op, arg := range ops {
			switch op {
			case "$in":
				if !valueIn(value, arg.(bson.A)) {
					return false
				}
			case "$ne":
				if valueEquals(value, arg) {
					return false
				}
			case "$exists":
				if arg.(bool) != exists {
					return false
				}
			case "$regex":
				s, _ := value.(string)
				pattern, _ := ops["$regex"].(string)
				if !strings.Contains(strings.ToLower(s), strings.ToLower(pattern)) {
					return false
				}
			case "$options":
				// đã xử lý cùng $regex
			default:
				return false
			}
		}
		return true
	}

	return valueEquals(value, cond)
}

// valueEquals so sánh theo ngữ nghĩa Mongo: field mảng match khi chứa giá trị
func valueEquals(docValue, want interface{}) bool {
	if arr, ok := docValue.([]interface{}); ok {
		for _, item := range arr {
			if item == want {
				return true
			}
		}
		return false
	}
	return docValue == want
}

func valueIn(docValue interface{}, set bson.A) bool {
	for _, want := range set {
		if valueEquals(docValue, want) {
			return true
		}
	}
	return false
}

func hasOperator(m bson.M) bool {
	for k := range m {
		if strings.HasPrefix(k, "$") {
			return true
		}
	}
	return false
}

// conv tạo document hội thoại tối giản cho fakeCounter
func conv(integrationID primitive.ObjectID, status string, extra map[string]interface{}) map[string]interface{} {
	doc := map[string]interface{}{
		"_id":           primitive.NewObjectID(),
		"integrationId": integrationID,
		"status":        status,
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

// ----- Tests -----

func TestStatusFilterDropsInvalidValues(t *testing.T) {
	p := StatusFilter([]string{"open", "bogus"})
	in, ok := p.(basequery.FieldIn)
	if !ok {
		t.Fatalf("muốn FieldIn, nhận được %T", p)
	}
	if !reflect.DeepEqual(in.Values, []string{"open"}) {
		t.Errorf("giá trị ngoài enum phải bị loại: %v", in.Values)
	}

	// Input không rỗng nhưng toàn giá trị sai phải là MatchNone, không được nới rộng
	p = StatusFilter([]string{"bogus"})
	if _, ok := p.(basequery.MatchNone); !ok {
		t.Fatalf("status toàn giá trị sai phải là MatchNone, nhận được %T", p)
	}

	// Không truyền status nghĩa là không ràng buộc
	p = StatusFilter(nil)
	if _, ok := p.(basequery.MatchAll); !ok {
		t.Fatalf("status rỗng phải là MatchAll, nhận được %T", p)
	}
}

func TestChannelFilterZeroIntegrations(t *testing.T) {
	lookup := &fakeLookup{byChannel: map[string][]string{}}

	in, err := ChannelFilter(context.Background(), lookup, "unknown-channel")
	if err != nil {
		t.Fatalf("lỗi không mong muốn: %v", err)
	}
	if len(in.Values) != 0 {
		t.Errorf("channel không có integration phải cho tập rỗng: %v", in.Values)
	}

	// Tập rỗng render thành $in rỗng — không match document nào
	got := in.ToBson()
	want := bson.M{"integrationId": bson.M{"$in": bson.A{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("render sai: %v", got)
	}
}

func TestBuildAllQueriesIntersectsChannelWithFloor(t *testing.T) {
	i1 := primitive.NewObjectID().Hex()
	i2 := primitive.NewObjectID().Hex()

	lookup := &fakeLookup{
		visible:   []string{i1},
		byChannel: map[string][]string{"c1": {i1, i2}},
	}

	b := NewBuilder(ConversationListArgs{ChannelID: "c1"}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	p, ok := b.Query("integrations")
	if !ok {
		t.Fatal("thiếu sub-predicate integrations")
	}
	in, ok := p.(basequery.FieldIn)
	if !ok {
		t.Fatalf("muốn FieldIn, nhận được %T", p)
	}
	// Giao giữa sàn quyền {i1} và channel {i1,i2} phải là {i1}
	if !reflect.DeepEqual(in.Values, []string{i1}) {
		t.Errorf("giao sai: %v", in.Values)
	}
}

func TestMainQueryIdempotent(t *testing.T) {
	i1 := primitive.NewObjectID().Hex()
	lookup := &fakeLookup{
		visible:   []string{i1},
		byChannel: map[string][]string{"c1": {i1}},
	}

	args := ConversationListArgs{
		ChannelID: "c1",
		Status:    []string{"open"},
		Starred:   true,
		Search:    "hóa đơn",
	}
	viewer := Viewer{ID: "u1", StarredConversationIDs: []string{primitive.NewObjectID().Hex()}}

	b := NewBuilder(args, viewer, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	first := b.MainQuery().ToBson()
	second := b.MainQuery().ToBson()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("MainQuery không idempotent:\nlần 1: %v\nlần 2: %v", first, second)
	}
}

func TestCountByChannelsIncludesZeroEntries(t *testing.T) {
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()

	lookup := &fakeLookup{visible: nil}
	counter := &fakeCounter{docs: []map[string]interface{}{
		conv(i1, "open", nil),
	}}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 4)
	counts, err := engine.CountByChannels(context.Background(), []ChannelRef{
		{ID: "c1", IntegrationIDs: []string{i1.Hex()}},
		{ID: "c2", IntegrationIDs: []string{i2.Hex()}},
		{ID: "c3", IntegrationIDs: nil},
	})
	if err != nil {
		t.Fatalf("CountByChannels lỗi: %v", err)
	}

	if len(counts) != 3 {
		t.Fatalf("mỗi channel hiện có phải có một entry, nhận được %d entry", len(counts))
	}
	if counts["c1"] != 1 || counts["c2"] != 0 || counts["c3"] != 0 {
		t.Errorf("histogram sai: %v", counts)
	}
}

func TestCountByChannelsHistogram(t *testing.T) {
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()
	i3 := primitive.NewObjectID()

	lookup := &fakeLookup{
		visible: []string{i1.Hex(), i2.Hex(), i3.Hex()},
		byChannel: map[string][]string{
			"c1": {i1.Hex(), i2.Hex()},
			"c2": {i3.Hex()},
		},
	}
	counter := &fakeCounter{docs: []map[string]interface{}{
		conv(i1, "open", nil),
		conv(i1, "new", nil),
		conv(i3, "open", nil),
	}}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 4)
	counts, err := engine.CountByChannels(context.Background(), []ChannelRef{
		{ID: "c1", IntegrationIDs: []string{i1.Hex(), i2.Hex()}},
		{ID: "c2", IntegrationIDs: []string{i3.Hex()}},
	})
	if err != nil {
		t.Fatalf("CountByChannels lỗi: %v", err)
	}

	want := map[string]int64{"c1": 2, "c2": 1}
	for key, n := range want {
		if counts[key] != n {
			t.Errorf("counts[%s] = %d, muốn %d", key, counts[key], n)
		}
	}
}

func TestCountByTagsKeysMatchGivenPartition(t *testing.T) {
	i1 := primitive.NewObjectID()
	t1 := primitive.NewObjectID()
	t2 := primitive.NewObjectID()
	companyTag := primitive.NewObjectID() // tag thuộc phân vùng khác, không được truyền vào

	lookup := &fakeLookup{visible: nil}
	counter := &fakeCounter{docs: []map[string]interface{}{
		conv(i1, "open", map[string]interface{}{"tagIds": []interface{}{t1}}),
		conv(i1, "open", map[string]interface{}{"tagIds": []interface{}{t1, companyTag}}),
		conv(i1, "open", nil),
	}}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 4)
	counts, err := engine.CountByTags(context.Background(), []string{t1.Hex(), t2.Hex()})
	if err != nil {
		t.Fatalf("CountByTags lỗi: %v", err)
	}

	if len(counts) != 2 {
		t.Fatalf("kết quả phải có đúng các tag được truyền vào, nhận được %v", counts)
	}
	if _, ok := counts[companyTag.Hex()]; ok {
		t.Error("tag của phân vùng khác không được xuất hiện trong kết quả")
	}
	if counts[t1.Hex()] != 2 || counts[t2.Hex()] != 0 {
		t.Errorf("đếm theo tag sai: %v", counts)
	}
}

func TestFixedCountsStarred(t *testing.T) {
	i1 := primitive.NewObjectID()
	c1 := conv(i1, "open", nil)
	c2 := conv(i1, "open", nil)
	c3 := conv(i1, "closed", nil)

	lookup := &fakeLookup{visible: nil}
	counter := &fakeCounter{docs: []map[string]interface{}{c1, c2, c3}}

	viewer := Viewer{
		ID: "u1",
		StarredConversationIDs: []string{
			c1["_id"].(primitive.ObjectID).Hex(),
			c3["_id"].(primitive.ObjectID).Hex(),
		},
	}

	b := NewBuilder(ConversationListArgs{}, viewer, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 4)
	counts, err := engine.FixedCounts(context.Background())
	if err != nil {
		t.Fatalf("FixedCounts lỗi: %v", err)
	}

	if counts[CountKeyStarred] != 2 {
		t.Errorf("starred = %d, muốn 2", counts[CountKeyStarred])
	}
	if counts[CountKeyResolved] != 1 {
		t.Errorf("resolved = %d, muốn 1", counts[CountKeyResolved])
	}
	// Cả 3 hội thoại đều chưa có assignedUserId
	if counts[CountKeyUnassigned] != 3 {
		t.Errorf("unassigned = %d, muốn 3", counts[CountKeyUnassigned])
	}
}

func TestUnreadCountShortcut(t *testing.T) {
	viewerOID := primitive.NewObjectID()
	otherOID := primitive.NewObjectID()
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()

	docs := []map[string]interface{}{
		// Chưa đọc: new, chưa phân công, viewer không có trong readUserIds
		conv(i1, "new", map[string]interface{}{"readUserIds": []interface{}{}}),
		// Viewer đã đọc
		conv(i1, "new", map[string]interface{}{"readUserIds": []interface{}{viewerOID}}),
		// Người khác đọc nhưng viewer thì chưa
		conv(i1, "new", map[string]interface{}{"readUserIds": []interface{}{otherOID}}),
		// Đã phân công thì không tính
		conv(i1, "new", map[string]interface{}{"assignedUserId": otherOID}),
		// Không phải trạng thái new
		conv(i1, "open", nil),
		// Ngoài sàn quyền của viewer
		conv(i2, "new", map[string]interface{}{"readUserIds": []interface{}{}}),
	}

	lookup := &fakeLookup{visible: []string{i1.Hex()}}
	counter := &fakeCounter{docs: docs}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: viewerOID.Hex()}, lookup)
	if err := b.BuildFloor(context.Background()); err != nil {
		t.Fatalf("BuildFloor lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 4)
	n, err := engine.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("UnreadCount lỗi: %v", err)
	}
	if n != 2 {
		t.Errorf("unread = %d, muốn 2", n)
	}
}

func TestCountAggregationStopsOnCanceledRequest(t *testing.T) {
	i1 := primitive.NewObjectID()

	lookup := &fakeLookup{visible: nil}
	counter := &fakeCounter{docs: []map[string]interface{}{conv(i1, "open", nil)}}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	// Request bị hủy trước khi các count chạy
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewCountEngine(counter, b, lookup, 2)
	counts, err := engine.FixedCounts(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("hủy request phải hủy phép thống kê, nhận được %v", err)
	}
	if counts != nil {
		t.Errorf("thống kê bị hủy không được trả về map: %v", counts)
	}
}

func TestMainQueryNoArgsUnrestrictedIsMatchAll(t *testing.T) {
	lookup := &fakeLookup{visible: nil}

	b := NewBuilder(ConversationListArgs{}, Viewer{}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	// Base cho các phép đếm theo channel không được thêm ràng buộc nào
	if _, ok := b.MainQuery().(basequery.MatchAll); !ok {
		t.Fatalf("không filter, không sàn quyền thì main query phải là MatchAll, nhận được %T", b.MainQuery())
	}
}

func TestCountAggregationAtomicOnFailure(t *testing.T) {
	i1 := primitive.NewObjectID()
	i2 := primitive.NewObjectID()

	lookup := &fakeLookup{visible: nil}
	counter := &fakeCounter{
		docs: []map[string]interface{}{conv(i1, "open", nil)},
		// Lỗi khi đếm membership của channel c2
		failWhen: func(filter bson.M) bool {
			return matchesFilter(filter, conv(i2, "open", nil))
		},
	}

	b := NewBuilder(ConversationListArgs{}, Viewer{ID: "u1"}, lookup)
	if err := b.BuildAllQueries(context.Background()); err != nil {
		t.Fatalf("BuildAllQueries lỗi: %v", err)
	}

	engine := NewCountEngine(counter, b, lookup, 2)
	counts, err := engine.CountByChannels(context.Background(), []ChannelRef{
		{ID: "c1", IntegrationIDs: []string{i1.Hex()}},
		{ID: "c2", IntegrationIDs: []string{i2.Hex()}},
	})
	if err == nil {
		t.Fatal("một count lỗi thì toàn bộ phép thống kê phải lỗi")
	}
	if counts != nil {
		t.Errorf("không được trả về map thiếu một phần: %v", counts)
	}
}
