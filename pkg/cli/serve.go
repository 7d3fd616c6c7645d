package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mindverse-hq/taskdeck/pkg/cli/config"
	httpctrl "github.com/mindverse-hq/taskdeck/pkg/controller/http"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var noAuthUID string
	var appCfg config.App
	var repoCfg config.Repository
	var mailCfg config.Mail
	var analyzerCfg config.Analyzer
	var slackCfg config.Slack
	var directoryCfg config.Directory
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TASKDECK_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for the application (e.g., https://your-domain.com), used for internal meeting links",
			Sources:     cli.EnvVars("TASKDECK_BASE_URL"),
			Destination: &baseURL,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID with full privileges (development only). Example: --no-auth=u-dev",
			Category:    "Authentication",
			Sources:     cli.EnvVars("TASKDECK_NO_AUTH"),
			Destination: &noAuthUID,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, mailCfg.Flags()...)
	flags = append(flags, analyzerCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, directoryCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryClose, err := sentryCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}
			defer sentryClose()

			meetingCfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			fanout, err := mailCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure mail transport")
			}

			analyzerSvc, err := analyzerCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure analyzer")
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack service")
			}

			directorySvc, err := directoryCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure directory client")
			}

			ucOpts := []usecase.Option{
				usecase.WithFanout(fanout),
				usecase.WithBaseURL(baseURL),
				usecase.WithMeetingConfig(meetingCfg),
			}
			if analyzerSvc != nil {
				ucOpts = append(ucOpts, usecase.WithAnalyzer(analyzerSvc))
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSlack(slackSvc))
			}
			if directorySvc != nil {
				ucOpts = append(ucOpts, usecase.WithDirectory(directorySvc))
			}

			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if noAuthUID != "" {
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
				httpOpts = append(httpOpts, httpctrl.WithNoAuth(noAuthUID))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
