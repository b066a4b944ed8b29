package routes

import (
	"roomradar/constants"
	"roomradar/controllers"
	middlewares "roomradar/middleware"
	"roomradar/services"
	"roomradar/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
)

// Deps gom các phụ thuộc cần để dựng controller
type Deps struct {
	Redis         *redis.Client
	Logger        logger.Logger
	Booking       *services.BookingService
	Listing       *services.ListingService
	Wallet        *services.WalletService
	Ledger        *services.LedgerService
	Notifications *services.NotificationService
	Users         *services.UserService
	Melody        *melody.Melody
}

func SetupRoutes(router *gin.Engine, deps Deps) {

	bookingController := controllers.NewBookingController(deps.Booking, deps.Listing, deps.Redis, deps.Logger)
	listingController := controllers.NewListingController(deps.Listing, deps.Redis, deps.Logger)
	walletController := controllers.NewWalletController(deps.Wallet, deps.Ledger, deps.Redis, deps.Logger)
	notificationController := controllers.NewNotificationController(deps.Notifications, deps.Logger)
	userController := controllers.NewUserController(deps.Users, deps.Logger)

	v1 := router.Group("/api/v1")

	v1.GET("/buildings", listingController.ListBuildings)
	v1.GET("/buildings/:id", listingController.GetBuilding)
	v1.GET("/buildings/:id/rooms", listingController.ListRooms)
	v1.POST("/buildings", middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleLandlord), listingController.SaveBuilding)
	v1.POST("/buildings/:id/rooms", middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleLandlord), listingController.SaveRoom)
	v1.GET("/myBuildings", middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleLandlord), listingController.MyBuildings)
	v1.GET("/rooms/:id", listingController.GetRoom)

	v1.POST("/bookings/quote", bookingController.QuoteCost)
	v1.POST("/bookings", middlewares.AuthMiddleware(constants.RoleTenant, constants.RoleAdmin), bookingController.Create)
	v1.GET("/bookings", middlewares.AuthMiddleware(), bookingController.List)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(), bookingController.Get)
	v1.PUT("/bookings/:id/approve", middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleLandlord), bookingController.Approve)
	v1.PUT("/bookings/:id/decline", middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleLandlord), bookingController.Decline)
	v1.PUT("/bookings/:id/cancel", middlewares.AuthMiddleware(constants.RoleTenant, constants.RoleAdmin), bookingController.Cancel)

	v1.GET("/wallet/balance", middlewares.AuthMiddleware(), walletController.Balance)
	v1.GET("/wallet/transactions", middlewares.AuthMiddleware(), walletController.Transactions)
	v1.POST("/wallet/topup", middlewares.AuthMiddleware(), walletController.InitiateTopUp)
	v1.POST("/wallet/topup/complete", middlewares.AuthMiddleware(), walletController.CompleteTopUp)
	v1.POST("/wallet/withdraw", middlewares.AuthMiddleware(), walletController.Withdraw)

	v1.GET("/notifications", middlewares.AuthMiddleware(), notificationController.Inbox)
	v1.PUT("/notifications/:id/read", middlewares.AuthMiddleware(), notificationController.MarkRead)

	v1.GET("/profile", middlewares.AuthMiddleware(), userController.Me)
	v1.PUT("/profile", middlewares.AuthMiddleware(), userController.UpdateMe)
	v1.POST("/banks", middlewares.AuthMiddleware(), userController.AddBank)

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		deps.Melody.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})
}
