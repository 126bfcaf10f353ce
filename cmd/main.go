package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "sensor_station/docs" // swagger spec, registered for the /swagger route
	"sensor_station/internal/handlers"
	"sensor_station/internal/logger"
	"sensor_station/internal/models"
	"sensor_station/internal/mqtt"
	"sensor_station/internal/repository"
	"sensor_station/internal/server"
	"sensor_station/internal/service"
	"sensor_station/internal/telemetry"
	"sensor_station/internal/wifi"

	"github.com/spf13/viper"
)

// @title           Sensor Station API
// @version         1.0
// @description     Soft-AP telemetry station: current readings, network status, event journal.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	// load config.yml; a missing file runs the demo defaults
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger from config (console, plus rotated file when log.file is set)
	log := logger.Init(logger.Options{
		Level:      viper.GetString("log.level"),
		File:       viper.GetString("log.file"),
		MaxSizeMB:  viper.GetInt("log.max_size_mb"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAgeDays: viper.GetInt("log.max_age_days"),
	})

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire the journal and the reading store
	repos := repository.NewRepository(db)
	recorder := service.NewRecorder(repos.EventRepo, log)
	store := telemetry.NewStore(recorder)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bring the access point up before anything serves. A station that
	// cannot broadcast has nothing to offer, so failure here is fatal.
	state, link, err := bringUpNetwork(ctx, recorder, log)
	if err != nil {
		log.Fatalw("network bring-up failed", "err", err)
	}
	log.Infow("access point up", "ip", link.IP, "ssid", link.SSID, "channel", link.Channel)

	// wire dependencies
	services := service.NewService(repos, store, service.NewNetworkService(state, link), authConfig(log))
	apiHandler := handlers.NewHandler(services, log)

	// start the reading updater
	updater := telemetry.NewUpdater(store, recorder, log)
	go updater.Run(ctx, viper.GetDuration("telemetry.period"))

	// optional broker publishing
	mqttClient := startMQTTPublisher(ctx, store, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, mqttClient, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	// Demo defaults keep the station bootable without a config file.
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("db.path", "station.db")
	viper.SetDefault("ap.ssid", "SENSOR-STATION")
	viper.SetDefault("ap.passphrase", "") // empty runs an open network
	viper.SetDefault("ap.channel", 1)
	viper.SetDefault("ap.hidden", false)
	viper.SetDefault("ap.max_clients", wifi.DefaultMaxClients)
	viper.SetDefault("ap.tx_power_dbm", wifi.DefaultTxPowerDBm)
	viper.SetDefault("ap.link_timeout", "15s")
	viper.SetDefault("telemetry.period", "5s")
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "localhost")
	viper.SetDefault("mqtt.port", 1883)
	viper.SetDefault("mqtt.client_id", "sensor-station")
	viper.SetDefault("mqtt.station_id", "station-1")
	viper.SetDefault("mqtt.period", "5s")
	viper.SetDefault("auth.signing_key", "")
	viper.SetDefault("auth.token_ttl", "1h")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "station.db")
		dbPath = "station.db"
	}
	return repository.InitDB(dbPath)
}

// bringUpNetwork validates the AP parameters and walks the bring-up to its
// terminal state. The returned state and link are settled for the lifetime
// of the process.
func bringUpNetwork(ctx context.Context, events wifi.Events, log *logger.Logger) (wifi.BringupState, models.LinkInfo, error) {
	params, err := wifi.Validate(
		viper.GetString("ap.ssid"),
		viper.GetString("ap.passphrase"),
		viper.GetInt("ap.channel"),
	)
	if err != nil {
		return wifi.StateFailed, models.LinkInfo{}, err
	}
	params.Hidden = viper.GetBool("ap.hidden")
	if mc := viper.GetInt("ap.max_clients"); mc > 0 {
		params.MaxClients = mc
	}

	bringup := wifi.NewBringup(&wifi.SimulatedDriver{}, events, log)
	bringup.TxPowerDBm = viper.GetInt("ap.tx_power_dbm")
	if lt := viper.GetDuration("ap.link_timeout"); lt > 0 {
		bringup.LinkTimeout = lt
	}
	link, err := bringup.Run(ctx, params)
	return bringup.State(), link, err
}

// authConfig reads the token settings, generating an ephemeral signing key
// when the config leaves one out. Tokens then stop verifying across
// restarts, so production deployments should set auth.signing_key.
func authConfig(log *logger.Logger) service.AuthConfig {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalw("failed to generate signing key", "err", err)
		}
		key = hex.EncodeToString(buf)
		log.Warnw("auth.signing_key not set; using ephemeral key, tokens reset on restart")
	}
	return service.AuthConfig{
		SigningKey: key,
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	}
}

// startMQTTPublisher connects to the broker and forwards readings until ctx
// is canceled. Returns nil when publishing is disabled.
func startMQTTPublisher(ctx context.Context, store *telemetry.Store, log *logger.Logger) *mqtt.Client {
	if !viper.GetBool("mqtt.enabled") {
		return nil
	}

	client := mqtt.NewClient(mqtt.Options{
		Broker:    viper.GetString("mqtt.broker"),
		Port:      viper.GetInt("mqtt.port"),
		ClientID:  viper.GetString("mqtt.client_id"),
		StationID: viper.GetString("mqtt.station_id"),
	}, log)

	go func() {
		if err := client.Connect(ctx); err != nil {
			log.Errorw("mqtt connect failed; publishing disabled", "err", err)
			return
		}
		publisher := service.NewPublisherService(store, client, log)
		publisher.Run(ctx, viper.GetDuration("mqtt.period"))
	}()
	return client
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, mqttClient *mqtt.Client, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	if mqttClient != nil {
		mqttClient.Disconnect()
	}
}
