package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kiranalabs/pos/internal/common/constants"
	"github.com/kiranalabs/pos/internal/log"
)

func Start() {
	logger := log.InitLogger("./logs/pos-service.log", os.Getenv("POS_ENV")).
		With().
		Str(log.KeyAppName, constants.AppPosService).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "pos"}
	commands := []*cobra.Command{
		{
			Use:   "server",
			Short: "Run the point-of-sale HTTP service",
			Run: func(cmd *cobra.Command, args []string) {
				RunPosService(cmd.Context())
			},
		},
		{
			Use:   "seed",
			Short: "Create the admin user and sample catalog",
			Run: func(cmd *cobra.Command, args []string) {
				RunSeed(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
