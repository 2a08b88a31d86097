// Package middleware chứa các middleware của Fiber app: xác thực và phân quyền.
package middleware

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	authsvc "github.com/Alond/erxes-api/internal/api/auth/service"
	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/logger"
)

// AuthManager quản lý việc xác thực và phân quyền tập trung
type AuthManager struct {
	userService *authsvc.UserService
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
	authManagerErr      error
)

// GetAuthManager trả về instance singleton của AuthManager
func GetAuthManager() (*AuthManager, error) {
	authManagerOnce.Do(func() {
		userService, err := authsvc.NewUserService()
		if err != nil {
			authManagerErr = err
			return
		}
		authManagerInstance = &AuthManager{userService: userService}
	})
	return authManagerInstance, authManagerErr
}

// Các quyền ghi mà agent (không phải admin) vẫn được phép thực hiện,
// vì đây là thao tác nghiệp vụ hàng ngày của nhân viên hỗ trợ.
var agentWritePermissions = map[string]bool{
	"Conversation.Update": true,
	"User.Update":         true,
}

// hasPermission kiểm tra user có quyền thực hiện permission yêu cầu không.
// Quy ước permission có dạng "<Resource>.<Action>":
//   - Admin có toàn quyền
//   - Mọi user đã xác thực có quyền Read
//   - Quyền ghi khác chỉ dành cho admin, trừ các ngoại lệ trong agentWritePermissions
func hasPermission(user *authmodels.User, permission string) bool {
	if permission == "" {
		return true
	}
	if user.IsAdmin() {
		return true
	}
	if strings.HasSuffix(permission, ".Read") {
		return true
	}
	return agentWritePermissions[permission]
}

// extractBearerToken lấy JWT token từ header Authorization
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}

// Authenticate xác thực token và nạp user vào request context
func (am *AuthManager) Authenticate(c fiber.Ctx) (*authmodels.User, error) {
	tokenStr, err := extractBearerToken(c)
	if err != nil {
		return nil, err
	}

	userID, err := am.userService.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := am.userService.FindOneById(c.Context(), userID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	// Token phải khớp với token mới nhất trên user (logout làm token cũ hết hiệu lực)
	if user.Token != tokenStr {
		return nil, common.ErrTokenExpired
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	return &user, nil
}

// AuthMiddleware tạo middleware xác thực JWT và kiểm tra quyền.
// requirePermission rỗng nghĩa là chỉ cần đăng nhập, không cần quyền cụ thể.
func AuthMiddleware(requirePermission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		am, err := GetAuthManager()
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Error("Không khởi tạo được AuthManager")
			basehdl.WriteResponse(c, nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, nil))
			return nil
		}

		user, err := am.Authenticate(c)
		if err != nil {
			basehdl.WriteResponse(c, nil, err)
			return nil
		}

		if !hasPermission(user, requirePermission) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":       c.Path(),
				"user_id":    user.ID.Hex(),
				"role":       user.Role,
				"permission": requirePermission,
			}).Warn("Từ chối truy cập do thiếu quyền")
			basehdl.WriteResponse(c, nil, common.ErrPermissionDenied)
			return nil
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		return c.Next()
	}
}
