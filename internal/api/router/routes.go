// Package router định tuyến toàn bộ API.
//
// ============================================================================
// ⚠️ QUY TẮC ĐĂNG KÝ ROUTE VỚI MIDDLEWARE (Fiber v3)
// ============================================================================
//
// Trong Fiber v3, truyền middleware trực tiếp vào route
// (router.Get(path, middleware, handler)) KHÔNG hoạt động - middleware sẽ
// không được gọi. Mọi route cần middleware PHẢI đăng ký qua
// registerRouteWithMiddleware (tạo group rồi .Use() middleware).
//
// 🔍 KIỂM TRA:
//    Nếu thấy route nào dùng cách trực tiếp router.Get/Post/Put/Delete(path, middleware, handler)
//    → PHẢI SỬA NGAY thành registerRouteWithMiddleware!
//
// ============================================================================
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/Alond/erxes-api/internal/api/auth/handler"
	basehdl "github.com/Alond/erxes-api/internal/api/base/handler"
	contactshdl "github.com/Alond/erxes-api/internal/api/contacts/handler"
	engagehdl "github.com/Alond/erxes-api/internal/api/engage/handler"
	inboxhdl "github.com/Alond/erxes-api/internal/api/inbox/handler"
	"github.com/Alond/erxes-api/internal/api/middleware"
)

// CONFIGS

// CRUDHandler định nghĩa interface cho các handler CRUD
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	// Create
	InsOne  bool // Insert One
	InsMany bool // Insert Many

	// Read
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	// Update
	UpdOne  bool // Update One
	UpdMany bool // Update Many
	UpdById bool // Update By Id

	// Delete
	DelOne  bool // Delete One
	DelMany bool // Delete Many
	DelById bool // Delete By Id

	// Other
	Count    bool // Count Documents
	Distinct bool // Distinct
	Upsert   bool // Upsert One
	Exists   bool // Document Exists
}

// Config cho từng collection
var (
	readOnlyConfig = CRUDConfig{
		InsOne: false, InsMany: false,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: false, UpdMany: false, UpdById: false,
		DelOne: false, DelMany: false, DelById: false,
		Count: true, Distinct: true,
		Upsert: false, Exists: true,
	}

	readWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdMany: true, UpdById: true,
		DelOne: true, DelMany: true, DelById: true,
		Count: true, Distinct: true,
		Upsert: true, Exists: true,
	}

	// Inbox Module Collections
	// Conversation chỉ đọc qua CRUD chung - mọi thay đổi trạng thái đi qua
	// các route workflow riêng (assign / change-status / mark-as-read ...)
	conversationConfig = readOnlyConfig
	channelConfig      = readWriteConfig
	integrationConfig  = readWriteConfig
	brandConfig        = readWriteConfig
	tagConfig          = readWriteConfig

	// Engage Module Collections
	engageMessageConfig = readWriteConfig

	// Contacts Module Collections
	companyConfig = readWriteConfig
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// registerRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3)
//
// ⚠️ QUAN TRỌNG: Đây là CÁCH DUY NHẤT hoạt động đúng trong Fiber v3!
//
// ❌ KHÔNG DÙNG cách trực tiếp: router.Get(path, middleware, handler) - middleware sẽ KHÔNG được gọi!
// ✅ PHẢI DÙNG cách này: registerRouteWithMiddleware với .Use() method
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.AuthMiddleware("")
//	registerRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authMiddleware}, handler)
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw) // ← ĐÂY LÀ CÁCH ĐÚNG - dùng .Use() thay vì truyền trực tiếp
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// registerCRUDRoutes đăng ký các route CRUD cho một collection
//
// ⚠️ LƯU Ý: Hàm này đã dùng registerRouteWithMiddleware (cách đúng), không cần sửa.
// Nếu thêm route mới bên ngoài hàm này, PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, permissionPrefix string) {
	authInsertMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Insert")
	authReadMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Read")
	authUpdateMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Update")
	authDeleteMiddleware := middleware.AuthMiddleware(permissionPrefix + ".Delete")

	// Create operations
	if config.InsOne {
		registerRouteWithMiddleware(router, prefix, "POST", "/insert-one", []fiber.Handler{authInsertMiddleware}, h.InsertOne)
	}
	if config.InsMany {
		registerRouteWithMiddleware(router, prefix, "POST", "/insert-many", []fiber.Handler{authInsertMiddleware}, h.InsertMany)
	}

	// Read operations
	if config.Find {
		registerRouteWithMiddleware(router, prefix, "GET", "/find", []fiber.Handler{authReadMiddleware}, h.Find)
	}
	if config.FindOne {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-one", []fiber.Handler{authReadMiddleware}, h.FindOne)
	}
	if config.FindById {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", []fiber.Handler{authReadMiddleware}, h.FindOneById)
	}
	if config.FindIds {
		registerRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", []fiber.Handler{authReadMiddleware}, h.FindManyByIds)
	}
	if config.Paginate {
		registerRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", []fiber.Handler{authReadMiddleware}, h.FindWithPagination)
	}

	// Update operations
	if config.UpdOne {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-one", []fiber.Handler{authUpdateMiddleware}, h.UpdateOne)
	}
	if config.UpdMany {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-many", []fiber.Handler{authUpdateMiddleware}, h.UpdateMany)
	}
	if config.UpdById {
		registerRouteWithMiddleware(router, prefix, "PUT", "/update-by-id/:id", []fiber.Handler{authUpdateMiddleware}, h.UpdateById)
	}

	// Delete operations
	if config.DelOne {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-one", []fiber.Handler{authDeleteMiddleware}, h.DeleteOne)
	}
	if config.DelMany {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-many", []fiber.Handler{authDeleteMiddleware}, h.DeleteMany)
	}
	if config.DelById {
		registerRouteWithMiddleware(router, prefix, "DELETE", "/delete-by-id/:id", []fiber.Handler{authDeleteMiddleware}, h.DeleteById)
	}

	// Other operations
	if config.Count {
		// Count chỉ cần đăng nhập, không cần permission cụ thể
		authOnlyMiddleware := middleware.AuthMiddleware("")
		registerRouteWithMiddleware(router, prefix, "GET", "/count", []fiber.Handler{authOnlyMiddleware}, h.CountDocuments)
	}
	if config.Distinct {
		registerRouteWithMiddleware(router, prefix, "GET", "/distinct", []fiber.Handler{authReadMiddleware}, h.Distinct)
	}
	if config.Upsert {
		registerRouteWithMiddleware(router, prefix, "POST", "/upsert-one", []fiber.Handler{authUpdateMiddleware}, h.Upsert)
	}
	if config.Exists {
		registerRouteWithMiddleware(router, prefix, "GET", "/exists", []fiber.Handler{authReadMiddleware}, h.DocumentExists)
	}
}

// CÁC HÀM ĐĂNG KÝ ROUTES

// registerSystemRoutes đăng ký các route cho system operations
func registerSystemRoutes(router fiber.Router) error {
	systemHandler := basehdl.NewSystemHandler()

	// System routes - không yêu cầu xác thực
	router.Get("/system/health", systemHandler.HandleHealth)

	return nil
}

// registerAuthRoutes đăng ký các route cho authentication cá nhân
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %v", err)
	}

	// Login là route public duy nhất ngoài health check
	router.Post("/auth/login", userHandler.HandleLogin)

	// Tạo tài khoản mới yêu cầu quyền User.Insert (chỉ admin có)
	registerMiddleware := middleware.AuthMiddleware("User.Insert")
	registerRouteWithMiddleware(router, "/auth", "POST", "/register", []fiber.Handler{registerMiddleware}, userHandler.HandleRegister)

	// Các route cá nhân: chỉ cần đăng nhập, không cần permission cụ thể
	authOnlyMiddleware := middleware.AuthMiddleware("")
	registerRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	registerRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	registerRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateProfile)
	registerRouteWithMiddleware(router, "/auth", "PUT", "/change-password", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleChangePassword)

	return nil
}

// registerInboxRoutes đăng ký các route cho inbox module
// (conversation workflow + channel / integration / brand / tag)
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerInboxRoutes(router fiber.Router) error {
	conversationHandler, err := inboxhdl.NewConversationHandler()
	if err != nil {
		return fmt.Errorf("failed to create conversation handler: %v", err)
	}

	channelHandler, err := inboxhdl.NewChannelHandler()
	if err != nil {
		return fmt.Errorf("failed to create channel handler: %v", err)
	}

	integrationHandler, err := inboxhdl.NewIntegrationHandler()
	if err != nil {
		return fmt.Errorf("failed to create integration handler: %v", err)
	}

	brandHandler, err := inboxhdl.NewBrandHandler()
	if err != nil {
		return fmt.Errorf("failed to create brand handler: %v", err)
	}

	tagHandler, err := inboxhdl.NewTagHandler()
	if err != nil {
		return fmt.Errorf("failed to create tag handler: %v", err)
	}

	// Conversation - truy vấn danh sách và thống kê
	convReadMiddleware := middleware.AuthMiddleware("Conversation.Read")
	registerRouteWithMiddleware(router, "/conversation", "GET", "/list", []fiber.Handler{convReadMiddleware}, conversationHandler.HandleList)
	registerRouteWithMiddleware(router, "/conversation", "GET", "/detail/:id", []fiber.Handler{convReadMiddleware}, conversationHandler.HandleDetail)
	registerRouteWithMiddleware(router, "/conversation", "GET", "/total-count", []fiber.Handler{convReadMiddleware}, conversationHandler.HandleTotalCount)
	registerRouteWithMiddleware(router, "/conversation", "GET", "/counts", []fiber.Handler{convReadMiddleware}, conversationHandler.HandleCounts)
	registerRouteWithMiddleware(router, "/conversation", "GET", "/unread-count", []fiber.Handler{convReadMiddleware}, conversationHandler.HandleUnreadCount)

	// Conversation - workflow mutations (agent được phép qua Conversation.Update)
	convUpdateMiddleware := middleware.AuthMiddleware("Conversation.Update")
	registerRouteWithMiddleware(router, "/conversation", "POST", "/assign", []fiber.Handler{convUpdateMiddleware}, conversationHandler.HandleAssign)
	registerRouteWithMiddleware(router, "/conversation", "POST", "/unassign", []fiber.Handler{convUpdateMiddleware}, conversationHandler.HandleUnassign)
	registerRouteWithMiddleware(router, "/conversation", "POST", "/change-status", []fiber.Handler{convUpdateMiddleware}, conversationHandler.HandleChangeStatus)
	registerRouteWithMiddleware(router, "/conversation", "POST", "/mark-as-read/:id", []fiber.Handler{convUpdateMiddleware}, conversationHandler.HandleMarkAsRead)
	registerRouteWithMiddleware(router, "/conversation", "POST", "/toggle-participation/:id", []fiber.Handler{convUpdateMiddleware}, conversationHandler.HandleToggleParticipation)

	// Star/unstar chỉ chạm vào hồ sơ của chính user (User.Update - agent được phép)
	starMiddleware := middleware.AuthMiddleware("User.Update")
	registerRouteWithMiddleware(router, "/conversation", "POST", "/star/:id", []fiber.Handler{starMiddleware}, conversationHandler.HandleStar)
	registerRouteWithMiddleware(router, "/conversation", "POST", "/unstar/:id", []fiber.Handler{starMiddleware}, conversationHandler.HandleUnstar)

	// Channel - route nghiệp vụ riêng
	channelReadMiddleware := middleware.AuthMiddleware("Channel.Read")
	registerRouteWithMiddleware(router, "/channel", "GET", "/by-member", []fiber.Handler{channelReadMiddleware}, channelHandler.HandleByMember)

	// CRUD routes
	r.registerCRUDRoutes(router, "/conversation", conversationHandler, conversationConfig, "Conversation")
	r.registerCRUDRoutes(router, "/channel", channelHandler, channelConfig, "Channel")
	r.registerCRUDRoutes(router, "/integration", integrationHandler, integrationConfig, "Integration")
	r.registerCRUDRoutes(router, "/brand", brandHandler, brandConfig, "Brand")
	r.registerCRUDRoutes(router, "/tag", tagHandler, tagConfig, "Tag")

	return nil
}

// registerEngageRoutes đăng ký các route cho engage module
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerEngageRoutes(router fiber.Router) error {
	engageHandler, err := engagehdl.NewEngageMessageHandler()
	if err != nil {
		return fmt.Errorf("failed to create engage message handler: %v", err)
	}

	engageReadMiddleware := middleware.AuthMiddleware("EngageMessage.Read")
	registerRouteWithMiddleware(router, "/engage-message", "GET", "/counts", []fiber.Handler{engageReadMiddleware}, engageHandler.HandleCounts)

	engageUpdateMiddleware := middleware.AuthMiddleware("EngageMessage.Update")
	registerRouteWithMiddleware(router, "/engage-message", "POST", "/set-live/:id", []fiber.Handler{engageUpdateMiddleware}, engageHandler.HandleSetLive)
	registerRouteWithMiddleware(router, "/engage-message", "POST", "/set-pause/:id", []fiber.Handler{engageUpdateMiddleware}, engageHandler.HandleSetPause)
	registerRouteWithMiddleware(router, "/engage-message", "POST", "/set-live-manual/:id", []fiber.Handler{engageUpdateMiddleware}, engageHandler.HandleSetLiveManual)

	r.registerCRUDRoutes(router, "/engage-message", engageHandler, engageMessageConfig, "EngageMessage")

	return nil
}

// registerContactsRoutes đăng ký các route cho contacts module
//
// ⚠️ LƯU Ý: Tất cả routes ở đây PHẢI dùng registerRouteWithMiddleware (xem comment ở đầu file)
func (r *Router) registerContactsRoutes(router fiber.Router) error {
	companyHandler, err := contactshdl.NewCompanyHandler()
	if err != nil {
		return fmt.Errorf("failed to create company handler: %v", err)
	}

	companyReadMiddleware := middleware.AuthMiddleware("Company.Read")
	registerRouteWithMiddleware(router, "/company", "GET", "/list", []fiber.Handler{companyReadMiddleware}, companyHandler.HandleList)
	registerRouteWithMiddleware(router, "/company", "GET", "/detail/:id", []fiber.Handler{companyReadMiddleware}, companyHandler.HandleDetail)
	registerRouteWithMiddleware(router, "/company", "GET", "/counts-by-tags", []fiber.Handler{companyReadMiddleware}, companyHandler.HandleCountsByTags)

	r.registerCRUDRoutes(router, "/company", companyHandler, companyConfig, "Company")

	return nil
}

// SetupRoutes thiết lập toàn bộ route cho ứng dụng
func SetupRoutes(app *fiber.App) error {
	// Khởi tạo route prefix
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	// Khởi tạo router
	router := NewRouter(app)

	// 1. System Routes
	if err := registerSystemRoutes(v1); err != nil {
		return fmt.Errorf("failed to register system routes: %v", err)
	}

	// 2. Auth Routes (Xác thực cá nhân)
	if err := router.registerAuthRoutes(v1); err != nil {
		return fmt.Errorf("failed to register auth routes: %v", err)
	}

	// 3. Inbox Routes
	if err := router.registerInboxRoutes(v1); err != nil {
		return fmt.Errorf("failed to register inbox routes: %v", err)
	}

	// 4. Engage Routes
	if err := router.registerEngageRoutes(v1); err != nil {
		return fmt.Errorf("failed to register engage routes: %v", err)
	}

	// 5. Contacts Routes
	if err := router.registerContactsRoutes(v1); err != nil {
		return fmt.Errorf("failed to register contacts routes: %v", err)
	}

	// 6. User CRUD (đọc) - quản lý thành viên
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %v", err)
	}
	router.registerCRUDRoutes(v1, "/user", userHandler, readOnlyConfig, "User")

	return nil
}
