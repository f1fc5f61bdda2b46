package main

import (
	"context"
	"doccare-service/internal/app/config"
	"doccare-service/internal/app/drivers/database"
	"doccare-service/internal/app/drivers/logger"
	"doccare-service/internal/app/drivers/messaging"
	"doccare-service/internal/app/models"
	"doccare-service/internal/app/services/shared/jwtmanager"
	"doccare-service/internal/app/wiring"
	"doccare-service/internal/pkg/constvars"
	"doccare-service/internal/pkg/utils"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sweeper",
		Short:        "Operational commands for the doccare service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(doctorsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <sweep>",
		Short: "Run one pass of a named sweep and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap, services, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer bootstrap.Shutdown(context.Background())

			ctx := context.WithValue(cmd.Context(), constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
			stats, err := services.Watchers.Run(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered sweeps",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{
				constvars.WatcherNamePaymentExpiry,
				constvars.WatcherNameConsultationExpiry,
				constvars.WatcherNameReminderDispatch,
			} {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, _ := cmd.Flags().GetString("id")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			internalConfig := config.NewInternalConfig()
			manager, err := jwtmanager.NewJWTManager(internalConfig, logger.NewZapLogger(config.NewDriverConfig(), internalConfig))
			if err != nil {
				return err
			}
			created, err := manager.CreateToken(cmd.Context(), &jwtmanager.CreateTokenInput{
				Actor: models.Actor{ID: actorID, Role: models.ActorRole(role)},
				TTL:   ttl,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"token":      created.Token,
				"expires_at": created.ExpiresAt,
			})
		},
	}
	cmd.Flags().String("id", "", "actor id (token subject)")
	cmd.Flags().String("role", string(models.ActorRolePatient), "actor role: patient or doctor")
	cmd.Flags().Duration("ttl", 0, "token lifetime, defaults to JWT_TOKEN_TTL_IN_MINUTES")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Manage the doctor directory",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upsert doctors from a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap, services, err := boot(cmd.Context())
			if err != nil {
				return err
			}
			defer bootstrap.Shutdown(context.Background())

			count, err := wiring.SeedDoctors(cmd.Context(), services.DoctorRepository, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d doctors\n", count)
			return nil
		},
	}
	cmd.AddCommand(importCmd)
	return cmd
}

// boot connects the configured drivers without starting the watchers.
func boot(ctx context.Context) (*config.Bootstrap, *wiring.Services, error) {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrap := &config.Bootstrap{
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.App.StorageDriver == constvars.StorageDriverMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		bootstrap.Redis = database.NewRedisClient(driverConfig)
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(internalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	services, err := wiring.Build(ctx, bootstrap, utils.NewSystemClock())
	if err != nil {
		return nil, nil, err
	}
	return bootstrap, services, nil
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
