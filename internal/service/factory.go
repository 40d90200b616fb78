package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/fsdevblog/simka/internal/esim"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	UserService    *UserService
	CatalogService *CatalogService
	PricingService *PricingService
	LoyaltyService *LoyaltyService
	OrderService   *OrderService
	PaymentService *PaymentService
	AuthService    *AuthService
}

type FactoryArgs struct {
	UnitOfWork        uow.UOW
	Vendor            esim.Client
	RateSource        RateSource
	Robokassa         *robokassa.Adapter
	InvoiceNode       *snowflake.Node
	Notifier          FulfillmentNotifier
	AdminLogin        string
	AdminPasswordHash string
	JWTSecret         []byte
	Logger            *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(args.UnitOfWork)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	pricingService, pricingServiceErr := NewPricingService(args.UnitOfWork, args.RateSource)
	if pricingServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", pricingServiceErr.Error())
	}

	catalogService, catalogServiceErr := NewCatalogService(args.UnitOfWork, args.Vendor, pricingService, args.Logger)
	if catalogServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogServiceErr.Error())
	}

	loyaltyService, loyaltyServiceErr := NewLoyaltyService(args.UnitOfWork)
	if loyaltyServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", loyaltyServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(
		args.UnitOfWork, args.Vendor, loyaltyService, args.Notifier, args.Logger)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	paymentService, paymentServiceErr := NewPaymentService(
		args.UnitOfWork, args.Robokassa, args.InvoiceNode, orderService, args.Logger)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	return &AppServices{
		UserService:    userService,
		CatalogService: catalogService,
		PricingService: pricingService,
		LoyaltyService: loyaltyService,
		OrderService:   orderService,
		PaymentService: paymentService,
		AuthService:    NewAuthService(args.AdminLogin, args.AdminPasswordHash, args.JWTSecret),
	}, nil
}
