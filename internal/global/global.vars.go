package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alond/erxes-api/config"
	"github.com/Alond/erxes-api/internal/registry"
)

// CollectionNames chứa tên các collection trong MongoDB
type CollectionNames struct {
	Users          string // Tên collection cho người dùng (agent/operator)
	Conversations  string // Tên collection cho cuộc hội thoại
	Channels       string // Tên collection cho kênh (nhóm integration + thành viên)
	Integrations   string // Tên collection cho integration (messenger, form, ...)
	Brands         string // Tên collection cho brand
	Tags           string // Tên collection cho tag (phân vùng theo type)
	EngageMessages string // Tên collection cho engage message (tin nhắn chủ động)
	Companies      string // Tên collection cho công ty
}

// Các biến toàn cục
var Validate *validator.Validate        // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client       // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration  // Cấu hình của server
var MongoDB_ColNames = CollectionNames{
	Users:          "users",
	Conversations:  "conversations",
	Channels:       "channels",
	Integrations:   "integrations",
	Brands:         "brands",
	Tags:           "tags",
	EngageMessages: "engage_messages",
	Companies:      "companies",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
