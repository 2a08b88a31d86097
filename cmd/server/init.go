package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Alond/erxes-api/config"
	authmodels "github.com/Alond/erxes-api/internal/api/auth/models"
	contactsmodels "github.com/Alond/erxes-api/internal/api/contacts/models"
	engagemodels "github.com/Alond/erxes-api/internal/api/engage/models"
	inboxmodels "github.com/Alond/erxes-api/internal/api/inbox/models"
	"github.com/Alond/erxes-api/internal/database"
	"github.com/Alond/erxes-api/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// collectionNames trả về danh sách tên tất cả collection của hệ thống
func collectionNames() []string {
	return []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Conversations,
		global.MongoDB_ColNames.Channels,
		global.MongoDB_ColNames.Integrations,
		global.MongoDB_ColNames.Brands,
		global.MongoDB_ColNames.Tags,
		global.MongoDB_ColNames.EngageMessages,
		global.MongoDB_ColNames.Companies,
	}
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, object_id, strong_password, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	dbName := global.ServerConfig.MongoDB_DBName

	// Khởi tạo database và các collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session, dbName, collectionNames()); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection theo tag `index` trên model
	db := global.MongoDB_Session.Database(dbName)
	ctx := context.TODO()
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Conversations), inboxmodels.Conversation{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Channels), inboxmodels.Channel{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Integrations), inboxmodels.Integration{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Brands), inboxmodels.Brand{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Tags), inboxmodels.Tag{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.EngageMessages), engagemodels.EngageMessage{})
	database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.Companies), contactsmodels.Company{})
}
