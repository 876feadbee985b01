package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"retroboard/internal/accounts"
	"retroboard/internal/collab"
	"retroboard/internal/config"
	"retroboard/internal/events"
	"retroboard/internal/httpapi"
	"retroboard/internal/retention"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server together with the feed retention job.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, cmd)
		},
	}
}

func runServe(opts *RootOptions, cmd *cobra.Command) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("close database", "err", err)
		}
	}()

	pub, closePub, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePub()

	engine := collab.New(st,
		collab.WithLogger(log),
		collab.WithPublisher(pub),
		collab.WithInviteBaseURL(cfg.InviteBaseURL))

	secret, err := jwtSecret(cfg, log)
	if err != nil {
		return err
	}
	acctOpts := []accounts.Option{accounts.WithLogger(log)}
	if cfg.LDAPURL != "" {
		acctOpts = append(acctOpts, accounts.WithDirectory(&accounts.LDAPDirectory{
			URL:     cfg.LDAPURL,
			BindDN:  cfg.LDAPBindDN,
			Timeout: cfg.LDAPTimeout,
		}))
		log.Info("directory registration enabled", "url", cfg.LDAPURL)
	}
	accts := accounts.NewService(st, accounts.NewTokens(secret, cfg.JWTTTL), acctOpts...)

	for _, dir := range []string{cfg.UploadDir, cfg.PostPictureDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload dir: %w", err)
		}
	}

	handler := httpapi.New(engine, accts, st.DB(), log, httpapi.Config{
		InviteWebURL:   cfg.InviteWebURL,
		AppScheme:      cfg.AppScheme,
		PublicBaseURL:  cfg.PublicBaseURL,
		UploadDir:      cfg.UploadDir,
		PostPictureDir: cfg.PostPictureDir,
		CORSOrigins:    cfg.CORSOrigins,
	})
	srv := &http.Server{Addr: cfg.Addr, Handler: handler,
		ReadTimeout: 15 * time.Second, ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}

	job := &retention.Job{Purger: engine, Days: cfg.RetentionDays, Interval: cfg.RetentionInterval, Log: log}
	go job.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")
	ctxSh, cancelSh := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSh()
	if err := srv.Shutdown(ctxSh); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newPublisher returns the RabbitMQ publisher when RABBIT_URL is set and an
// in-process bus with a debug logging subscriber otherwise.
func newPublisher(ctx context.Context, cfg config.App, log *slog.Logger) (events.Publisher, func(), error) {
	if cfg.RabbitURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			return nil, nil, err
		}
		log.Info("publishing events to rabbitmq", "exchange", cfg.EventsExchange)
		return p, func() {
			if err := p.Close(); err != nil {
				log.Warn("close rabbitmq", "err", err)
			}
		}, nil
	}
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(0)
	go func() {
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				log.Debug("event", "type", ev.Type, "board_id", ev.BoardID)
			case <-ctx.Done():
				return
			}
		}
	}()
	return bus, cancel, nil
}

func jwtSecret(cfg config.App, log *slog.Logger) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	log.Warn("JWT_SECRET not set, tokens will not survive a restart")
	return secret, nil
}
