package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
)

func TestHasPermission(t *testing.T) {
	admin := &authmodels.User{Role: authmodels.RoleAdmin}
	agent := &authmodels.User{Role: authmodels.RoleAgent}

	tests := []struct {
		name       string
		user       *authmodels.User
		permission string
		want       bool
	}{
		{"permission rỗng chỉ cần đăng nhập", agent, "", true},
		{"admin có toàn quyền", admin, "Channel.Delete", true},
		{"agent được đọc mọi tài nguyên", agent, "Brand.Read", true},
		{"agent được cập nhật conversation", agent, "Conversation.Update", true},
		{"agent được cập nhật hồ sơ user", agent, "User.Update", true},
		{"agent không được tạo channel", agent, "Channel.Insert", false},
		{"agent không được xóa tag", agent, "Tag.Delete", false},
		{"agent không được tạo user", agent, "User.Insert", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasPermission(tt.user, tt.permission), "quyền %q cho role %s", tt.permission, tt.user.Role)
		})
	}
}
