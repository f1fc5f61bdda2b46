package main

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/delivery/http/controllers"
	"doccare-service/internal/app/delivery/http/middlewares"
	"doccare-service/internal/app/delivery/http/routers"
	"doccare-service/internal/app/drivers/database"
	"doccare-service/internal/app/drivers/logger"
	"doccare-service/internal/app/drivers/messaging"
	"doccare-service/internal/app/wiring"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.App.StorageDriver == constvars.StorageDriverMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		bootstrap.Redis = database.NewRedisClient(driverConfig)
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while shutting down drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	services, err := wiring.Build(context.Background(), bootstrap, utils.NewSystemClock())
	if err != nil {
		return err
	}

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, services.JWTManager, services.ResourceLimiter)

	// Controllers
	handlers := routers.Controllers{
		Appointment:  controllers.NewAppointmentController(bootstrap.Logger, services.AppointmentUsecase, bootstrap.InternalConfig),
		Payment:      controllers.NewPaymentController(bootstrap.Logger, services.PaymentUsecase, bootstrap.InternalConfig),
		Consultation: controllers.NewConsultationController(bootstrap.Logger, services.ConsultationUsecase, bootstrap.InternalConfig),
		Sweep:        controllers.NewSweepController(bootstrap.Logger, services.Watchers),
	}

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewareInstance, handlers)

	// Watchers
	if bootstrap.InternalConfig.Watchers.Enabled {
		bootstrap.WatchersStop = services.Watchers.StartAll(context.Background())
	}
	return nil
}
