// Package authhdl chứa các handler xử lý request HTTP cho phần xác thực và quản lý người dùng
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alond/erxes-api/internal/api/auth/dto"
	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	authsvc "github.com/Alond/erxes-api/internal/api/auth/service"
	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/common"
)

// UserHandler xử lý các request liên quan đến xác thực và quản lý thông tin người dùng
type UserHandler struct {
	*basehdl.BaseHandler[authmodels.User, dto.UserCreateInput, dto.UserUpdateInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo một instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	baseHandler := basehdl.NewBaseHandler[authmodels.User, dto.UserCreateInput, dto.UserUpdateInput](userService)
	return &UserHandler{
		BaseHandler: baseHandler,
		userService: userService,
	}, nil
}

// viewerID lấy user ID từ context (được middleware auth set sau khi xác thực token)
func (h *UserHandler) viewerID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := c.Locals("user_id")
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuthToken, "User not authenticated", common.StatusUnauthorized, nil)
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleRegister tạo mới người dùng.
// Endpoint đặc biệt vì mật khẩu phải được hash trước khi lưu,
// CRUD chuẩn sẽ lưu mật khẩu thô vào document.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.UserCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Loại bỏ thông tin nhạy cảm trước khi trả về
		user.Password = ""
		user.Token = ""

		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleLogin xác thực username/password và trả về JWT token
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.userService.Login(c.Context(), &input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleLogout xóa token hiện tại của người dùng
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := h.viewerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update := &basesvc.UpdateData{Unset: map[string]interface{}{"token": ""}}
		_, err = h.userService.UpdateById(c.Context(), objID, update)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng hiện tại.
// Lấy userID từ context chứ không từ URL params, user chỉ xem được chính mình.
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := h.viewerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.userService.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user.Password = ""
		user.Token = ""

		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin hiển thị của người dùng hiện tại
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := h.viewerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.UserUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Chỉ cho phép cập nhật các trường hiển thị, không đụng vào role/password
		set := map[string]interface{}{}
		if input.Email != "" {
			set["email"] = input.Email
		}
		if input.FullName != "" {
			set["details.fullName"] = input.FullName
		}
		if len(set) == 0 {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		user, err := h.userService.UpdateById(c.Context(), objID, &basesvc.UpdateData{Set: set})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user.Password = ""
		user.Token = ""

		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu của người dùng hiện tại
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := h.viewerID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.UserChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.userService.ChangePassword(c.Context(), objID, &input)
		h.HandleResponse(c, nil, err)
		return nil
	})
}
