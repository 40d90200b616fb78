package api

import (
	"time"

	"github.com/fsdevblog/simka/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// WebhookServiceTimeout больше обычного: в обработку вебхука входит
	// покупка eSIM у вендора.
	WebhookServiceTimeout = 30 * time.Second
)

const (
	RouteGroup      = "/api"
	AdminRouteGroup = "/api/admin"

	ProductsRoute   = "/products"
	ProductRoute    = "/products/:id"
	UsersInitRoute  = "/users/init"
	UserOrdersRoute = "/users/:telegramID/orders"
	OrdersRoute     = "/orders"
	OrderRoute      = "/orders/:id"
	PaymentRoute    = "/payments/:orderID"
	ResultRoute     = "/payments/robokassa/result"
	SuccessRoute    = "/payments/robokassa/success"
	FailRoute       = "/payments/robokassa/fail"
	ReferralsRoute  = "/referrals/:telegramID"
	HealthRoute     = "/health"

	LoginRoute            = "/login"
	ProductsSyncRoute     = "/products/sync"
	ProductsActivateRoute = "/products/activate"
	ProductsBadgeRoute    = "/products/badge"
	ProductsRepriceRoute  = "/products/reprice"
	LoyaltyLevelsRoute    = "/loyalty-levels"
	LoyaltyLevelRoute     = "/loyalty-levels/:id"
	SettingsPricingRoute  = "/settings/pricing"
	RateRefreshRoute      = "/settings/rate/refresh"
	AdminOrderCancelRoute = "/orders/:id/cancel"
	AdminOrderRefundRoute = "/orders/:id/refund"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	CatalogService CatalogServicer
	OrderService   OrderServicer
	PaymentService PaymentServicer
	LoyaltyService LoyaltyServicer
	PricingService PricingServicer
	AuthService    AuthServicer
	VendorHealth   VendorHealther
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	usersHandler := NewUsersHandler(args.UserService, args.OrderService)
	productsHandler := NewProductsHandler(args.CatalogService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	paymentsHandler := NewPaymentsHandler(args.PaymentService)
	loyaltyHandler := NewLoyaltyHandler(args.LoyaltyService)
	settingsHandler := NewSettingsHandler(args.PricingService)
	authHandler := NewAuthHandler(args.AuthService)
	healthHandler := NewHealthHandler(args.VendorHealth)

	api := r.Group(RouteGroup)

	api.GET(ProductsRoute, productsHandler.Index)
	api.GET(ProductRoute, productsHandler.Show)
	api.POST(UsersInitRoute, usersHandler.Init)
	api.GET(UserOrdersRoute, usersHandler.Orders)
	api.GET(ReferralsRoute, usersHandler.Referrals)
	api.POST(OrdersRoute, ordersHandler.Create)
	api.GET(OrderRoute, ordersHandler.Show)
	api.POST(PaymentRoute, paymentsHandler.Create)
	api.POST(ResultRoute, paymentsHandler.Result)
	api.GET(SuccessRoute, paymentsHandler.Success)
	api.GET(FailRoute, paymentsHandler.Fail)
	api.GET(HealthRoute, healthHandler.Show)

	admin := r.Group(AdminRouteGroup)
	admin.POST(LoginRoute, authHandler.Login)

	admin.Use(middlewares.AdminRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного администратора.
	admin.POST(ProductsSyncRoute, productsHandler.Sync)
	admin.PATCH(ProductsActivateRoute, productsHandler.Activate)
	admin.PATCH(ProductsBadgeRoute, productsHandler.Badge)
	admin.PATCH(ProductsRepriceRoute, productsHandler.Reprice)

	admin.GET(LoyaltyLevelsRoute, loyaltyHandler.Index)
	admin.POST(LoyaltyLevelsRoute, loyaltyHandler.Create)
	admin.PUT(LoyaltyLevelRoute, loyaltyHandler.Update)
	admin.DELETE(LoyaltyLevelRoute, loyaltyHandler.Delete)

	admin.GET(SettingsPricingRoute, settingsHandler.Show)
	admin.PUT(SettingsPricingRoute, settingsHandler.Update)
	admin.POST(RateRefreshRoute, settingsHandler.RefreshRate)

	admin.POST(AdminOrderCancelRoute, ordersHandler.Cancel)
	admin.POST(AdminOrderRefundRoute, ordersHandler.Refund)

	return r
}
