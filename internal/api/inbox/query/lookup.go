// Package inboxquery xây dựng các truy vấn hội thoại: thư viện filter,
// query builder và engine đếm theo dimension. Mọi filter đều được biểu diễn
// bằng đại số vị từ của basequery trước khi render thành bson.
package inboxquery

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// IntegrationLookup cung cấp các phép tra cứu tập integration id theo
// channel / kind / brand và theo quyền nhìn thấy của viewer.
//
// Quy ước trả về: slice nil nghĩa là "không ràng buộc" (viewer nhìn thấy
// tất cả); slice rỗng khác nil nghĩa là "không có integration nào" và sẽ
// render thành filter không match document nào. Id không tồn tại trả về
// slice rỗng, không trả về lỗi.
type IntegrationLookup interface {
	// IntegrationIDsByChannel trả về các integration id thuộc channel
	IntegrationIDsByChannel(ctx context.Context, channelID string) ([]string, error)

	// IntegrationIDsByKind trả về các integration id có kind tương ứng
	IntegrationIDsByKind(ctx context.Context, kind string) ([]string, error)

	// IntegrationIDsByBrand trả về các integration id thuộc brand
	IntegrationIDsByBrand(ctx context.Context, brandID string) ([]string, error)

	// IntegrationIDsVisibleTo trả về các integration id mà viewer được phép
	// nhìn thấy (qua các channel viewer là thành viên)
	IntegrationIDsVisibleTo(ctx context.Context, viewerID string) ([]string, error)
}

// Counter đếm số hội thoại match một filter đã render.
type Counter interface {
	CountConversations(ctx context.Context, filter bson.M) (int64, error)
}

// Viewer là ngữ cảnh người dùng đang truy vấn.
type Viewer struct {
	ID                     string   // ID của user (hex)
	StarredConversationIDs []string // Các hội thoại user đã đánh dấu sao (hex)
}
