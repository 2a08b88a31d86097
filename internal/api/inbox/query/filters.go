package inboxquery

import (
	"context"

	basequery "github.com/Alond/erxes-api/internal/api/base/query"
	"github.com/Alond/erxes-api/internal/api/inbox/models"
)

// fieldIntegrationID là field dùng cho mọi ràng buộc membership theo integration
const fieldIntegrationID = "integrationId"

// TagFilter lọc hội thoại có gắn tag
func TagFilter(tagID string) basequery.Predicate {
	return basequery.FieldEquals{Field: "tagIds", Value: tagID}
}

// StatusFilter lọc hội thoại theo tập trạng thái. Giá trị ngoài enum bị loại bỏ;
// input không rỗng nhưng không còn giá trị hợp lệ nào trả về MatchNone
// (yêu cầu lọc một trạng thái không tồn tại không được phép nới rộng kết quả).
func StatusFilter(statuses []string) basequery.Predicate {
	if len(statuses) == 0 {
		return basequery.MatchAll{}
	}

	valid := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if models.IsValidConversationStatus(s) {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return basequery.MatchNone{}
	}
	return basequery.FieldIn{Field: "status", Values: valid}
}

// UnassignedFilter lọc hội thoại chưa được phân công
func UnassignedFilter() basequery.Predicate {
	return basequery.FieldExists{Field: "assignedUserId", Exists: false}
}

// ParticipatingFilter lọc hội thoại viewer đang tham gia
func ParticipatingFilter(viewerID string) basequery.Predicate {
	return basequery.FieldEquals{Field: "participatedUserIds", Value: viewerID}
}

// StarredFilter lọc hội thoại viewer đã đánh dấu sao.
// Viewer chưa đánh dấu sao hội thoại nào thì không match document nào.
func StarredFilter(viewer Viewer) basequery.Predicate {
	values := viewer.StarredConversationIDs
	if values == nil {
		values = []string{}
	}
	return basequery.FieldIn{Field: "_id", Values: values}
}

// ResolvedFilter lọc hội thoại đã đóng
func ResolvedFilter() basequery.Predicate {
	return basequery.FieldEquals{Field: "status", Value: models.ConversationStatusClosed}
}

// ChannelFilter chuyển ràng buộc channel thành membership trên integration id.
// Channel không tồn tại hoặc không có integration nào cho ra tập rỗng
// (render thành filter không match gì), không bao giờ nới rộng thành MatchAll.
func ChannelFilter(ctx context.Context, lookup IntegrationLookup, channelID string) (*basequery.FieldIn, error) {
	ids, err := lookup.IntegrationIDsByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return membershipOf(ids), nil
}

// IntegrationTypeFilter chuyển ràng buộc loại integration thành membership.
// Kind ngoài enum cho ra tập rỗng mà không cần tra cứu.
func IntegrationTypeFilter(ctx context.Context, lookup IntegrationLookup, kind string) (*basequery.FieldIn, error) {
	if !models.IsValidIntegrationKind(kind) {
		return membershipOf(nil), nil
	}
	ids, err := lookup.IntegrationIDsByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	return membershipOf(ids), nil
}

// BrandFilter chuyển ràng buộc brand thành membership trên integration id
func BrandFilter(ctx context.Context, lookup IntegrationLookup, brandID string) (*basequery.FieldIn, error) {
	ids, err := lookup.IntegrationIDsByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return membershipOf(ids), nil
}

// membershipOf bọc tập integration id thành FieldIn, chuẩn hóa nil thành tập rỗng
func membershipOf(ids []string) *basequery.FieldIn {
	if ids == nil {
		ids = []string{}
	}
	return &basequery.FieldIn{Field: fieldIntegrationID, Values: ids}
}
