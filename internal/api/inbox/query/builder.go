package inboxquery

import (
	"context"
	"regexp"

	basequery "github.com/Alond/erxes-api/internal/api/base/query"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
)

// ConversationListArgs là các tham số lọc danh sách hội thoại từ client.
type ConversationListArgs struct {
	ChannelID       string   // Lọc theo channel (chuyển thành membership integration)
	BrandID         string   // Lọc theo brand (chuyển thành membership integration)
	IntegrationType string   // Lọc theo loại integration
	Status          []string // Lọc theo trạng thái
	Unassigned      bool     // Chỉ hội thoại chưa phân công
	Participating   bool     // Chỉ hội thoại viewer tham gia
	Starred         bool     // Chỉ hội thoại viewer đã đánh dấu sao
	TagID           string   // Lọc theo tag
	IDs             []string // Giới hạn theo danh sách id cụ thể
	Search          string   // Tìm kiếm free-text trên nội dung
}

// Builder build các sub-predicate có tên từ ConversationListArgs và compose
// thành main query. Các phép tra cứu channel/brand/kind chỉ chạy một lần
// trong BuildAllQueries; MainQuery sau đó là hàm thuần trên kết quả đã cache.
type Builder struct {
	args   ConversationListArgs
	viewer Viewer
	lookup IntegrationLookup

	queries map[string]basequery.Predicate

	// floorIn là sàn quyền: các integration viewer được nhìn thấy.
	// nil nghĩa là không ràng buộc.
	floorIn *basequery.FieldIn

	// integrationsIn là floor ∩ channel ∩ brand, đã chuẩn hóa về
	// cùng một tập membership trên integrationId.
	integrationsIn *basequery.FieldIn
}

// NewBuilder tạo builder mới; gọi BuildAllQueries trước khi dùng MainQuery
func NewBuilder(args ConversationListArgs, viewer Viewer, lookup IntegrationLookup) *Builder {
	return &Builder{
		args:    args,
		viewer:  viewer,
		lookup:  lookup,
		queries: map[string]basequery.Predicate{},
	}
}

// BuildAllQueries resolve các tra cứu bất đồng bộ và cache các sub-predicate.
// Ràng buộc channel và brand được giao với sàn quyền bằng IntersectIn trên
// cùng tập integration id, không bao giờ AND trực tiếp hai ràng buộc membership.
func (b *Builder) BuildAllQueries(ctx context.Context) error {
	b.queries = map[string]basequery.Predicate{}

	// Sàn quyền: viewer chỉ thấy hội thoại của integration thuộc channel mình là thành viên
	if err := b.BuildFloor(ctx); err != nil {
		return err
	}

	current := b.floorIn

	if b.args.ChannelID != "" {
		channelIn, err := ChannelFilter(ctx, b.lookup, b.args.ChannelID)
		if err != nil {
			return err
		}
		b.queries["channel"] = *channelIn
		current = intersectMembership(current, channelIn)
	}

	if b.args.BrandID != "" {
		brandIn, err := BrandFilter(ctx, b.lookup, b.args.BrandID)
		if err != nil {
			return err
		}
		b.queries["brand"] = *brandIn
		current = intersectMembership(current, brandIn)
	}

	b.integrationsIn = current
	if current != nil {
		b.queries["integrations"] = *current
	}

	if b.args.IntegrationType != "" {
		typeIn, err := IntegrationTypeFilter(ctx, b.lookup, b.args.IntegrationType)
		if err != nil {
			return err
		}
		b.queries["integrationType"] = *typeIn
	}

	if len(b.args.Status) > 0 {
		b.queries["status"] = StatusFilter(b.args.Status)
	}
	if b.args.Unassigned {
		b.queries["unassigned"] = UnassignedFilter()
	}
	if b.args.Participating {
		b.queries["participating"] = ParticipatingFilter(b.viewer.ID)
	}
	if b.args.Starred {
		b.queries["starred"] = StarredFilter(b.viewer)
	}
	if b.args.TagID != "" {
		b.queries["tag"] = TagFilter(b.args.TagID)
	}

	return nil
}

// BuildFloor chỉ resolve sàn quyền của viewer, dành cho shortcut đếm unread
// không cần build toàn bộ các sub-predicate.
func (b *Builder) BuildFloor(ctx context.Context) error {
	visibleIDs, err := b.lookup.IntegrationIDsVisibleTo(ctx, b.viewer.ID)
	if err != nil {
		return err
	}
	if visibleIDs != nil {
		b.floorIn = &basequery.FieldIn{Field: fieldIntegrationID, Values: visibleIDs}
	} else {
		b.floorIn = nil
	}
	return nil
}

// intersectMembership giao hai tập membership, chuẩn hóa kết quả về *FieldIn:
// nil nghĩa là không ràng buộc, tập rỗng nghĩa là không match gì.
func intersectMembership(a, b *basequery.FieldIn) *basequery.FieldIn {
	switch p := basequery.IntersectIn(a, b).(type) {
	case basequery.MatchAll:
		return nil
	case basequery.FieldIn:
		return &p
	default: // MatchNone: giao rỗng không bao giờ được nới rộng
		return &basequery.FieldIn{Field: fieldIntegrationID, Values: []string{}}
	}
}

// Query trả về sub-predicate đã cache theo tên (dành cho test và debug)
func (b *Builder) Query(name string) (basequery.Predicate, bool) {
	p, ok := b.queries[name]
	return p, ok
}

// IntegrationsFilter trả về sàn quyền của viewer (nil = không ràng buộc).
// Dùng bởi shortcut đếm unread, không bao gồm ràng buộc channel/brand.
func (b *Builder) IntegrationsFilter() *basequery.FieldIn {
	return b.floorIn
}

// MainQuery compose các sub-predicate đang active thành một predicate duy nhất.
// Hàm thuần và idempotent: gọi nhiều lần cho cùng kết quả, không side effect.
func (b *Builder) MainQuery() basequery.Predicate {
	preds := make([]basequery.Predicate, 0, len(b.queries)+2)

	// channel và brand đã được gộp vào integrations, không AND lại
	for _, name := range []string{"integrations", "integrationType", "status", "unassigned", "participating", "starred", "tag"} {
		if p, ok := b.queries[name]; ok {
			preds = append(preds, p)
		}
	}

	if len(b.args.IDs) > 0 {
		preds = append(preds, basequery.FieldIn{Field: "_id", Values: b.args.IDs})
	}
	if b.args.Search != "" {
		preds = append(preds, basequery.FieldRegex{
			Field:   "content",
			Pattern: regexp.QuoteMeta(b.args.Search),
			Options: "i",
		})
	}

	return basequery.NewAnd(preds...)
}

// TagCountBase là base query cho thống kê theo tag: chỉ gồm ràng buộc
// integrations và integrationType, hẹp hơn main query.
func (b *Builder) TagCountBase() basequery.Predicate {
	preds := make([]basequery.Predicate, 0, 2)
	if p, ok := b.queries["integrations"]; ok {
		preds = append(preds, p)
	}
	if p, ok := b.queries["integrationType"]; ok {
		preds = append(preds, p)
	}
	return basequery.NewAnd(preds...)
}

// BrandCountBase là base query cho thống kê theo brand: chỉ gồm ràng buộc integrations
func (b *Builder) BrandCountBase() basequery.Predicate {
	if p, ok := b.queries["integrations"]; ok {
		return p
	}
	return basequery.MatchAll{}
}

// FixedCountBase là base query cho các khóa cố định
// (unassigned/participating/starred/resolved)
func (b *Builder) FixedCountBase() basequery.Predicate {
	return b.MainQuery()
}

// UnreadQuery build filter đếm hội thoại chưa đọc mà không cần build toàn bộ
// các sub-predicate: status mới, chưa phân công, viewer chưa đọc, và nằm trong
// sàn quyền của viewer.
func (b *Builder) UnreadQuery() basequery.Predicate {
	preds := []basequery.Predicate{
		basequery.FieldEquals{Field: "status", Value: models.ConversationStatusNew},
		UnassignedFilter(),
		basequery.FieldNotEquals{Field: "readUserIds", Value: b.viewer.ID},
	}
	if b.floorIn != nil {
		preds = append(preds, *b.floorIn)
	}
	return basequery.NewAnd(preds...)
}
