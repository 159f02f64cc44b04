package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"support-chat/auth"
	"support-chat/infrastructure/http/server"
	"support-chat/infrastructure/realtime"
	"support-chat/internal"
	"support-chat/moderation"
	"support-chat/observability"
	"support-chat/repositories"
	"support-chat/repositories/mongostore"
	"support-chat/runtime"
	"support-chat/runtime/workers"
	"support-chat/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const inspectEndpoint = "/inspect"

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred store close run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	credential, err := auth.LoadCredential(config.CredentialSource, config.AdminUsername, config.AdminPasswordHash, config.AdminCredentialsFile)
	if err != nil {
		return exitConfig, fmt.Errorf("admin credential: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Message store
	repository, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer closeStore()

	// 3. Services & relay
	issuer := auth.NewTokenIssuer(config.AuthTokenSecret, config.AuthTokenDuration)
	moderator, err := moderation.NewModerator(config.CensoredWordList(), '*')
	if err != nil {
		return exitConfig, fmt.Errorf("invalid CENSORED_WORDS: %w", err)
	}
	messageService := services.NewMessageService(repository, logger, config.MaxImageBytes).WithModerator(moderator)
	userService := services.NewUserService(repository, logger)
	authService := services.NewAuthService(credential, issuer, logger)
	relay := runtime.NewRelay(runtime.NewRegistry(), messageService, logger, config.DeliveryTimeout)
	chatService := services.NewChatService(messageService, relay, logger)

	monitor := observability.NewMonitor(logger)
	supervisor := workers.NewSupervisor(logger).Add(
		workers.NewProcessSampler(monitor, config.MetricInterval),
		workers.NewStatsReporter(relay, monitor, config.ReportInterval, logger),
	)
	supervisorDone := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervisorDone)
	}()

	gateway := realtime.NewGateway(relay, realtime.Options{
		BufferSize:      config.ConnectionBufferSize,
		WriteTimeout:    config.WSWriteTimeout,
		DeliveryTimeout: config.DeliveryTimeout,
		AllowedOrigins:  config.CorsOriginList(),
	}, logger)

	// 4. HTTP surface
	httpServer := server.New(server.Options{
		Address:         config.Address(),
		CorsOrigins:     config.CorsOriginList(),
		ReadTimeout:     config.ReadTimeout,
		WriteTimeout:    config.WriteTimeout,
		ShutdownTimeout: config.ShutdownTimeout,
		TokenDuration:   config.AuthTokenDuration,
	}, server.Dependencies{
		Messages: messageService,
		Users:    userService,
		Auth:     authService,
		Chat:     chatService,
		Relay:    relay,
		Issuer:   issuer,
		Monitor:  monitor,
		Socket:   gateway,
	}, logger)

	logger.Info("Support chat starting",
		"address", config.Address(),
		"store", config.StoreKind(),
		"credential_source", config.CredentialSource)

	// Run returns once ctx is cancelled and in-flight requests have drained.
	// Hijacked sockets are not tracked by net/http and are closed here.
	err = httpServer.Run(ctx)
	gateway.Shutdown()
	stop()
	<-supervisorDone
	if err != nil {
		return exitRuntime, fmt.Errorf("HTTP server error: %w", err)
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

// openStore picks MongoDB for mongodb:// endpoints and Badger otherwise.
func openStore(ctx context.Context, config internal.Config, logger *slog.Logger) (repositories.IMessageRepository, func(), error) {
	if config.StoreKind() == internal.StoreMongo {
		client, err := mongostore.Connect(ctx, config.StoreEndpoint, config.StoreDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connection failed: %w", err)
		}
		repository := mongostore.NewMessageRepository(client.Database, logger)
		if err := repository.EnsureIndexes(ctx); err != nil {
			_ = client.Close(context.Background())
			return nil, nil, fmt.Errorf("mongo index creation failed: %w", err)
		}
		return repository, func() {
			logger.Info("Closing MongoDB...")
			_ = client.Close(context.Background())
		}, nil
	}

	db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
	if err != nil {
		return nil, nil, fmt.Errorf("database opening failed: %w", err)
	}
	if config.InspectPort > 0 {
		logger.Info("Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.InspectPort, inspectEndpoint))
		database.StartDebugServer(db, config.InspectPort, inspectEndpoint, MessageMapper)
	}
	return repositories.NewMessageRepository(db, logger), func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}, nil
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.StoreEndpoint)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// MessageMapper renders stored messages in the Badger inspector.
func MessageMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	var disk repositories.DiskMessage
	if err := json.Unmarshal(val, &disk); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = disk.Sender
	row.Detail = disk.Text
	if disk.Text == "" && disk.ImageBase64 != "" {
		row.Detail = fmt.Sprintf("[image, %d bytes encoded]", len(disk.ImageBase64))
	}
	return row
}
