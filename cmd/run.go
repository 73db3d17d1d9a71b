package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simon-fu/cin-rms/internal/config"
	"github.com/simon-fu/cin-rms/internal/log"
	"github.com/simon-fu/cin-rms/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the control node session",
	Long: `Run binds the node's unix datagram socket, performs the CNISUP/REGISTER
handshake with the media server and then services peer messages until
interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("failed to load config", err)
		}
		if err := log.Init(cfg.Logger); err != nil {
			exitWithError("failed to init logging", err)
		}

		logger := log.GetLogger()

		sess, err := session.New(cfg.Node)
		if err != nil {
			exitWithError("failed to create session", err)
		}
		defer sess.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.WithFields(map[string]interface{}{
			"cn_path": cfg.Node.CNPath(),
			"ms_path": cfg.Node.MSPath(),
		}).Info("control node starting")

		if err := sess.Run(ctx); err != nil && err != context.Canceled {
			exitWithError("session failed", err)
		}
		logger.Info("control node stopped")
	},
}
