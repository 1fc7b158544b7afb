package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/WingTeck/golub-banka/internal/handlers"
	"github.com/WingTeck/golub-banka/internal/jwt"
	"github.com/WingTeck/golub-banka/internal/ledger"
	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/middlewares"
	"github.com/WingTeck/golub-banka/internal/repositories"
	"github.com/WingTeck/golub-banka/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title golub-banka API
// @version 1.0.0
// @description Pigeon bank: accounts, deposits, withdrawals, and card-to-card transfers
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, accountPolicy,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, redisExpSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExpSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, accountPolicy,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, redisExpSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExpSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, database, Redis, Kafka, and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, accountPolicy string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string, redisExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	accountPolicy = getEnv("APP_ACCOUNT_POLICY", "single")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisExpSecond, err = strconv.Atoi(getEnv("REDIS_EXP_SECOND", "300")); err != nil {
		return
	}

	// Kafka config
	kafkaBrokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaTopic = getEnv("KAFKA_TOPIC", "pigeon-transactions")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, the in-memory ledger,
// and the HTTP server. It restores ledger state from PostgreSQL, sets up
// routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, accountPolicy string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string, redisExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for transaction events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(kafkaBrokers...),
		Topic:    kafkaTopic,
		Balancer: &kafka.Hash{},
	}
	defer kafkaWriter.Close()

	// Initialize JWT service
	jwtSvc := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize repositories
	pigeonWriteRepo := repositories.NewPigeonWriteRepository(db, middlewares.GetTxFromContext)
	pigeonReadRepo := repositories.NewPigeonReadRepository(db)
	credsReadRepo := repositories.NewCredentialsReadRepository(db)
	credsWriteRepo := repositories.NewCredentialsWriteRepository(db, middlewares.GetTxFromContext)
	cacheRepo := repositories.NewAccountCacheRepository(rdb, time.Duration(redisExpSecond)*time.Second)

	// Build the in-memory ledger and restore persisted state
	policy := ledger.OneAccountPerOwner
	if accountPolicy == "multi" {
		policy = ledger.MultiAccountPerOwner
	}
	dir := ledger.NewDirectory(policy)

	seq, err := pigeonReadRepo.LoadSequence(ctx)
	if err != nil {
		logger.Log.Fatal("failed to load sequence counter:", err)
	}
	accounts, err := pigeonReadRepo.LoadAccounts(ctx)
	if err != nil {
		logger.Log.Fatal("failed to load accounts:", err)
	}
	dir.Restore(seq, accounts)
	logger.Log.Infow("ledger state restored", "accounts", len(accounts), "sequence", seq)

	engine := ledger.NewEngine(dir)

	// Initialize services
	bankService := services.NewBankService(dir, engine, pigeonWriteRepo, cacheRepo, kafkaWriter)
	authService := services.NewAuthService(credsReadRepo, credsWriteRepo, bankService, jwtSvc)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	accountHandler := handlers.NewAccountHandler(bankService)
	accountsHandler := handlers.NewAccountsHandler(bankService)
	transactionsHandler := handlers.NewTransactionsHandler(bankService)
	depositHandler := handlers.NewDepositHandler(bankService)
	withdrawHandler := handlers.NewWithdrawHandler(bankService)
	transferHandler := handlers.NewTransferHandler(bankService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Route("/api", func(r chi.Router) {
		r.With(middlewares.TxMiddleware(db)).Post("/register", registerHandler)
		r.Post("/login", loginHandler)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwtSvc))
			r.Get("/account", accountHandler)
			r.Get("/accounts", accountsHandler)
			r.Get("/transactions", transactionsHandler)
			r.Post("/deposit", depositHandler)
			r.Post("/withdraw", withdrawHandler)
			r.Post("/transfer", transferHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
