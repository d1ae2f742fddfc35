package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/infra/api"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logging"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	envFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Bookstore storefront client",
	Long: `storefront is the client side of the bookstore platform.

Guests keep their cart on this device; after login the cart lives on the
server. "serve" exposes the cart and session to local views over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(cfg.GoEnv, level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app はコマンド共通の組み立て結果
type app struct {
	session  *usecase.SessionUsecase
	cart     *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	close    func()
}

func newApp(ctx context.Context) (*app, error) {
	//ローカルストア接続
	gormDB, err := db.ConnectAndMigrate(cfg.LocalStoreDSN)
	if err != nil {
		return nil, err
	}
	local := infraRepo.NewLocalGormStore(gormDB)

	//セッション（保存済みがあれば復元）
	sessions := usecase.NewSessionUsecase(
		infraRepo.NewSessionRepository(local),
		cfg.IDPJWTSecret,
		usecase.SystemClock{},
		logger,
	)
	if err := sessions.Restore(ctx); err != nil {
		return nil, err
	}

	//API
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, sessions)

	//Usecase生成
	cart := usecase.NewCartUsecase(
		api.NewCartGateway(client),
		infraRepo.NewLocalCartRepository(local),
		api.NewBookGateway(client),
		sessions,
		usecase.CartOptions{MergeOnLogin: cfg.CartMergeOnLogin},
		logger,
	)
	sessions.AddListener(cart)

	// 読めなくても空カートで続ける（エラーは画面に出す）
	if _, err := cart.Load(ctx); err != nil {
		logger.Warn("initial cart load failed", zap.Error(err))
	}

	checkout := usecase.NewCheckoutUsecase(
		api.NewOrderGateway(client),
		cart,
		sessions,
		validator.NewCheckoutValidator(),
		logger,
	)

	return &app{
		session:  sessions,
		cart:     cart,
		checkout: checkout,
		close: func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
