package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Alond/erxes-api/internal/api/auth/dto"
	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	authsvc "github.com/Alond/erxes-api/internal/api/auth/service"
	"github.com/Alond/erxes-api/internal/global"
	"github.com/Alond/erxes-api/internal/logger"
)

// InitDefaultData seed tài khoản admin đầu tiên khi hệ thống chưa có user nào.
// Yêu cầu ADMIN_USERNAME và ADMIN_PASSWORD trong env; nếu thiếu thì bỏ qua
// và tài khoản phải được tạo qua route /auth/register bởi admin khác.
func InitDefaultData() {
	log := logger.GetAppLogger()

	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx := context.Background()
	total, err := userService.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	if total > 0 {
		return
	}

	cfg := global.ServerConfig
	if cfg.Admin_Username == "" || cfg.Admin_Password == "" {
		log.Warn("Hệ thống chưa có user nào và ADMIN_USERNAME/ADMIN_PASSWORD chưa được cấu hình, bỏ qua seed admin")
		return
	}

	admin, err := userService.Register(ctx, &dto.UserCreateInput{
		Username: cfg.Admin_Username,
		Password: cfg.Admin_Password,
		Role:     authmodels.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.WithFields(map[string]interface{}{
		"userId":   admin.ID.Hex(),
		"username": admin.Username,
	}).Info("Seeded initial admin user")
}
