package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/snowflake"
	"github.com/fsdevblog/simka/internal/config"
	"github.com/fsdevblog/simka/internal/esim"
	"github.com/fsdevblog/simka/internal/payments/robokassa"
	"github.com/fsdevblog/simka/internal/rates"
	"github.com/fsdevblog/simka/internal/repository/pgrepo"
	"github.com/fsdevblog/simka/internal/repository/repoargs"
	"github.com/fsdevblog/simka/internal/scheduler"
	"github.com/fsdevblog/simka/internal/service"
	"github.com/fsdevblog/simka/internal/telegram"
	"github.com/fsdevblog/simka/internal/transport/api"
	"github.com/fsdevblog/simka/pkg/uow"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error { //nolint:funlen
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	vendor := a.initVendor()

	invoiceNode, nodeErr := snowflake.NewNode(1)
	if nodeErr != nil {
		return fmt.Errorf("app run: %s", nodeErr.Error())
	}

	ratesURL := a.Config.RatesURL
	if ratesURL == "" {
		ratesURL = rates.DefaultBaseURL
	}

	services, sErr := service.Factory(service.FactoryArgs{
		UnitOfWork:        unitOfWork,
		Vendor:            vendor,
		RateSource:        rates.New(ratesURL, a.Config.RatesCurrency),
		Robokassa:         a.initRobokassa(),
		InvoiceNode:       invoiceNode,
		Notifier:          a.initNotifier(),
		AdminLogin:        a.Config.AdminLogin,
		AdminPasswordHash: a.Config.AdminPasswordHash,
		JWTSecret:         []byte(a.Config.JWTAdminSecret),
		Logger:            a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		CatalogService: services.CatalogService,
		OrderService:   services.OrderService,
		PaymentService: services.PaymentService,
		LoyaltyService: services.LoyaltyService,
		PricingService: services.PricingService,
		AuthService:    services.AuthService,
		VendorHealth:   vendor,
		JWTSecretKey:   []byte(a.Config.JWTAdminSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	jobs := scheduler.New(
		services.CatalogService,
		services.PricingService,
		services.OrderService,
		scheduler.DefaultConfig(),
		a.Logger,
	)
	go jobs.Start(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initVendor собирает цепочку вендоров. Заглушка подключается только явным
// флагом конфигурации, в остальных случаях всегда реальный клиент.
func (a *App) initVendor() *esim.Chain {
	if a.Config.UseStubVendor {
		a.Logger.Warn("using stub eSIM vendor")
		return esim.NewChain(a.Logger, esim.NewStub())
	}
	client := esim.NewHTTPClient("esimaccess", a.Config.EsimBaseURL, a.Config.EsimAccessCode, a.Config.EsimSecret)
	return esim.NewChain(a.Logger, client)
}

func (a *App) initRobokassa() *robokassa.Adapter {
	return robokassa.New(a.Config.RobokassaLogin, a.Config.RobokassaPassword1, a.Config.RobokassaPassword2).
		SetTestMode(a.Config.RobokassaTestMode)
}

func (a *App) initNotifier() service.FulfillmentNotifier {
	if a.Config.TelegramBotToken == "" {
		a.Logger.Warn("telegram bot token is not set, order notifications are disabled")
		return service.NoopNotifier{}
	}
	bot := telegram.New(telegram.DefaultBaseURL, a.Config.TelegramBotToken)
	return service.NewTelegramNotifier(bot, a.Config.WebAppBaseURL, a.Logger)
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName:         func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewUserRepository(dbtx) },
		repoargs.ProductRepoName:      func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewProductRepository(dbtx) },
		repoargs.OrderRepoName:        func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewOrderRepository(dbtx) },
		repoargs.TransactionRepoName:  func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewTransactionRepository(dbtx) },
		repoargs.LoyaltyLevelRepoName: func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewLoyaltyLevelRepository(dbtx) },
		repoargs.SettingRepoName:      func(dbtx uow.DBTX) uow.Repository { return pgrepo.NewSettingRepository(dbtx) },
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
