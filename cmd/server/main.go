package main

import (
	"database/sql"
	"net/http"

	"shopora-be/internal/api"
	"shopora-be/internal/cart"
	"shopora-be/internal/config"
	"shopora-be/internal/db"
	"shopora-be/internal/inventory"
	"shopora-be/internal/logger"
	"shopora-be/internal/order"
	"shopora-be/internal/product"
	"shopora-be/internal/user"

	"go.uber.org/zap"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	stock := inventory.NewLedger(database)
	calc := order.NewCalculator(order.ParsePricingMode(cfg.PricingMode))
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, stock, calc)

	return api.NewRouter(api.Services{
		Users:    userSvc,
		Products: productSvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
	})
}
