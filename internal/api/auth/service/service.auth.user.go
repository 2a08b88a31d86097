// Package authsvc chứa logic nghiệp vụ của domain auth: đăng nhập,
// quản lý người dùng và trạng thái đánh dấu sao hội thoại.
package authsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alond/erxes-api/internal/api/auth/dto"
	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	basesvc "github.com/Alond/erxes-api/internal/api/base/service"
	"github.com/Alond/erxes-api/internal/common"
	"github.com/Alond/erxes-api/internal/global"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.User](coll),
	}, nil
}

// Register tạo mới người dùng với mật khẩu đã hash bằng bcrypt
func (s *UserService) Register(ctx context.Context, input *dto.UserCreateInput) (authmodels.User, error) {
	var zero authmodels.User

	exists, err := s.DocumentExists(ctx, bson.M{"username": input.Username})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(common.ErrCodeBusinessOperation, "Tên đăng nhập đã tồn tại", common.StatusConflict, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Lỗi hash mật khẩu", common.StatusInternalServerError, err)
	}

	user := authmodels.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
		Details: authmodels.UserDetails{
			FullName: input.FullName,
		},
		StarredConversationIDs: []primitive.ObjectID{},
	}

	return s.InsertOne(ctx, user)
}

// Login xác thực username/password và phát hành JWT token.
// Token mới nhất được lưu lại trên document user để middleware tra cứu.
func (s *UserService) Login(ctx context.Context, input *dto.UserLoginInput) (*dto.UserLoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	// Lưu token mới nhất vào user
	update := &basesvc.UpdateData{Set: map[string]interface{}{"token": token}}
	if _, err := s.UpdateById(ctx, user.ID, update); err != nil {
		return nil, err
	}

	return &dto.UserLoginResult{
		Token:    token,
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// issueToken phát hành JWT token với claims chuẩn (sub, exp, iat)
func (s *UserService) issueToken(user authmodels.User) (string, error) {
	expireHours := global.ServerConfig.JwtExpireHours
	if expireHours <= 0 {
		expireHours = 72
	}

	claims := jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Duration(expireHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.ServerConfig.JwtSecret))
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Lỗi phát hành token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// VerifyToken kiểm tra chữ ký và hạn của JWT token, trả về userID trong claims
func (s *UserService) VerifyToken(tokenStr string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok || !primitive.IsValidObjectID(sub) {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	userID, _ := primitive.ObjectIDFromHex(sub)
	return userID, nil
}

// ChangePassword đổi mật khẩu sau khi xác thực mật khẩu cũ
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *dto.UserChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không chính xác", common.StatusBadRequest, nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Lỗi hash mật khẩu", common.StatusInternalServerError, err)
	}

	update := &basesvc.UpdateData{Set: map[string]interface{}{"password": string(hashed)}}
	_, err = s.UpdateById(ctx, userID, update)
	return err
}

// StarConversation đánh dấu sao một hội thoại cho user (idempotent nhờ $addToSet)
func (s *UserService) StarConversation(ctx context.Context, userID, conversationID primitive.ObjectID) (authmodels.User, error) {
	update := &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"starredConversationIds": conversationID},
	}
	return s.UpdateById(ctx, userID, update)
}

// UnstarConversation bỏ đánh dấu sao một hội thoại cho user
func (s *UserService) UnstarConversation(ctx context.Context, userID, conversationID primitive.ObjectID) (authmodels.User, error) {
	update := &basesvc.UpdateData{
		Pull: map[string]interface{}{"starredConversationIds": conversationID},
	}
	return s.UpdateById(ctx, userID, update)
}
