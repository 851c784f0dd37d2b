package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"shopcore/controllers"
	"shopcore/middleware"
	"shopcore/models"
	"shopcore/utils"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", controllers.SignUpUser)
	auth.Post("/login", controllers.SignInUser)
	auth.Post("/refresh", controllers.RefreshAccessToken)
	auth.Get("/logout", middleware.DeserializeUser, controllers.LogoutUser)

	products := api.Group("/products", middleware.DeserializeUser)
	products.Post("/", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.CreateProduct)
	products.Get("/", controllers.SearchProducts)
	products.Get("/:productId", controllers.GetProduct)
	products.Post("/:productId/tags", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.AttachProductTag)

	bundles := api.Group("/bundles", middleware.DeserializeUser, middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	bundles.Post("/", controllers.CreateBundle)
	bundles.Get("/", controllers.GetBundles)
	bundles.Delete("/:bundleId", controllers.EraseBundle)

	api.Delete("/productTags/:productTagId", middleware.DeserializeUser,
		middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.EraseProductTag)

	carts := api.Group("/carts", middleware.DeserializeUser, middleware.RequireRole(models.RoleBuyer))
	carts.Post("/", controllers.CreateCart)
	carts.Post("/:cartId/items", controllers.AddCartItem)
	carts.Delete("/:cartId/items/:itemId", controllers.EraseCartItem)

	orders := api.Group("/orders", middleware.DeserializeUser)
	orders.Post("/", middleware.RequireRole(models.RoleBuyer), controllers.CreateOrder)
	orders.Get("/", middleware.RequireRole(models.RoleBuyer), controllers.GetMyOrders)
	orders.Get("/:orderId", controllers.GetOrder)
	orders.Post("/:orderId/shipments", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.CreateShipment)
	orders.Post("/:orderId/cancellations", middleware.RequireRole(models.RoleBuyer), controllers.RequestCancellation)
	orders.Put("/:orderId/deliveries/:deliveryId", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.UpdateDelivery)
	orders.Delete("/:orderId/deliveries/:deliveryId", controllers.EraseDelivery)

	api.Get("/seller/orders", middleware.DeserializeUser, controllers.GetOrdersForSeller)
	api.Get("/seller/shipments", middleware.DeserializeUser,
		middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.GetShipmentsForSeller)

	shipments := api.Group("/shipments", middleware.DeserializeUser, middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	shipments.Put("/:shipmentId", controllers.UpdateShipment)
	shipments.Delete("/:shipmentId", controllers.EraseShipment)
	shipments.Put("/:shipmentId/items/:itemId", controllers.UpdateShipmentItem)

	cancellations := api.Group("/cancellations", middleware.DeserializeUser)
	cancellations.Get("/", controllers.GetCancellations)
	cancellations.Put("/:cancellationId", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.DecideCancellation)

	accounts := api.Group("/accounts", middleware.DeserializeUser)
	accounts.Post("/", controllers.CreateAccount)
	accounts.Get("/:accountId", controllers.GetAccount)
	accounts.Post("/:accountId/transactions", controllers.CreateTransaction)
	accounts.Get("/:accountId/transactions", controllers.GetTransactions)

	api.Delete("/transactions/:transactionId", middleware.DeserializeUser,
		middleware.RequireRole(models.RoleAdmin), controllers.EraseTransaction)

	tags := api.Group("/tags", middleware.DeserializeUser)
	tags.Post("/", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), controllers.CreateTag)
	tags.Post("/:tagId/moderation", middleware.RequireRole(models.RoleAdmin), controllers.ModerateTag)
	tags.Get("/:tagId/moderation", middleware.RequireRole(models.RoleAdmin), controllers.GetModerations)

	api.Delete("/moderation/:moderationId", middleware.DeserializeUser,
		middleware.RequireRole(models.RoleAdmin), controllers.EraseModeration)

	// Live notification socket, one per user.
	app.Get("/ws/:userId", websocket.New(func(conn *websocket.Conn) {
		userID := conn.Params("userId")
		utils.RegisterClient(userID, conn)
		defer utils.UnregisterClient(userID)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
