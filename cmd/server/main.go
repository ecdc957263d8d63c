package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/moneybook/moneybook.go/db"
	"github.com/moneybook/moneybook.go/db/migrations"
	"github.com/moneybook/moneybook.go/lib"
	"github.com/moneybook/moneybook.go/lib/filestore"
	"github.com/moneybook/moneybook.go/lib/service"
	"github.com/moneybook/moneybook.go/lib/tokens"
	"github.com/moneybook/moneybook.go/lib/transport"
	"github.com/moneybook/moneybook.go/rabbitmq"
	"github.com/uptrace/bun/migrate"
)

// @title        Moneybook
// @version      1.0.0
// @description  Personal finance ledger: accounts, transactions, receipts and monthly dashboards.

// @BasePath  /

// @securitydefinitions.oauth2.password  OAuth2Password
// @tokenUrl                             /auth
// @schemes                              https http
func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// Receipts go to GCS when a bucket is configured, local disk otherwise
	var fileStore filestore.Store
	if c.GCSBucket != "" {
		gcsStore, err := filestore.NewGCSStore(startupCtx, c.GCSBucket)
		if err != nil {
			logger.Fatalf("Error initializing GCS store: %v", err)
		}
		defer gcsStore.Close()
		fileStore = gcsStore
		logger.Infof("Storing receipts in GCS bucket %s", c.GCSBucket)
	} else {
		fileStore = filestore.NewDiskStore(c.FileStorageDir)
		logger.Infof("Storing receipts under %s", c.FileStorageDir)
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// No rabbitmq features will be available in this case.
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		rabbitmqClient, err = rabbitmq.Dial(c.RabbitMQUri,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithTxExchange(c.RabbitMQTxExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}
		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	svc := &service.MoneybookService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		FileStore:      fileStore,
		RabbitMQClient: rabbitmqClient,
	}
	if rabbitmqClient != nil {
		svc.TransactionEvents = make(chan rabbitmq.TransactionEvent, 64)
	}

	//init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("moneybook")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for the auth and admin surface
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterEndpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	//Start rabbit publisher
	if svc.RabbitMQClient != nil {
		backgroundWg.Add(1)
		go func() {
			err = svc.RabbitMQClient.StartPublishTransactions(backGroundCtx,
				svc.SubscribeToTransactionEvents,
				svc.EncodeTransactionEvent,
			)
			if err != nil {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}

			svc.Logger.Info("Rabbit transaction publisher done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("Moneybook exiting gracefully. Goodbye.")
}
