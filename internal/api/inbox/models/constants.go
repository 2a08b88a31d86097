// Package models - các model thuộc domain inbox (hội thoại, kênh, integration, brand, tag).
package models

// Trạng thái hội thoại (closed enum)
const (
	ConversationStatusNew    = "new"    // Hội thoại mới, chưa ai xử lý
	ConversationStatusOpen   = "open"   // Đang được xử lý
	ConversationStatusClosed = "closed" // Đã giải quyết xong
)

// ConversationStatuses là tập trạng thái hợp lệ của hội thoại
var ConversationStatuses = []string{
	ConversationStatusNew,
	ConversationStatusOpen,
	ConversationStatusClosed,
}

// IsValidConversationStatus kiểm tra status có nằm trong enum không
func IsValidConversationStatus(status string) bool {
	for _, s := range ConversationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Loại integration (closed enum)
const (
	IntegrationKindMessenger = "messenger"
	IntegrationKindForm      = "form"
	IntegrationKindTwitter   = "twitter"
	IntegrationKindFacebook  = "facebook"
)

// IntegrationKinds là tập loại integration hợp lệ
var IntegrationKinds = []string{
	IntegrationKindMessenger,
	IntegrationKindForm,
	IntegrationKindTwitter,
	IntegrationKindFacebook,
}

// IsValidIntegrationKind kiểm tra kind có nằm trong enum không
func IsValidIntegrationKind(kind string) bool {
	for _, k := range IntegrationKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Phân vùng tag theo loại đối tượng được gắn tag.
// Tag của phân vùng này không bao giờ xuất hiện trong thống kê của phân vùng khác.
const (
	TagTypeConversation  = "conversation"
	TagTypeCustomer      = "customer"
	TagTypeCompany       = "company"
	TagTypeEngageMessage = "engageMessage"
	TagTypeIntegration   = "integration"
)

// TagTypes là tập phân vùng tag hợp lệ
var TagTypes = []string{
	TagTypeConversation,
	TagTypeCustomer,
	TagTypeCompany,
	TagTypeEngageMessage,
	TagTypeIntegration,
}
