package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/micro/internal/config"
	"github.com/vango-dev/micro/internal/errors"
	"github.com/vango-dev/micro/internal/todo"
	"github.com/vango-dev/micro/pkg/component"
	"github.com/vango-dev/micro/pkg/reactive"
	"github.com/vango-dev/micro/pkg/server"
	"github.com/vango-dev/micro/pkg/storage"
)

type serveOptions struct {
	config    string
	addr      string
	store     string
	dsn       string
	logLevel  string
	logFormat string
	dev       bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the to-do app",
		Long: `Serve the to-do app over HTTP.

Configuration is read from micro.json or micro.yaml in the working
directory, or from --config. Flags override the file.

Examples:
  microtodo serve
  microtodo serve --addr :3000 --store sqlite --dsn todos.db
  microtodo serve --config deploy/micro.yaml --log-format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Path to micro.json or micro.yaml")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&opts.store, "store", "", "Storage driver: memory, sqlite or s3")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "SQLite database path")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Development mode: debug logs, no client caching")

	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.config != "" {
		cfg, err = config.LoadFile(opts.config)
	} else {
		cfg, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if flags.Changed("store") {
		cfg.Store.Driver = opts.store
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = opts.dsn
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if flags.Changed("dev") {
		cfg.Dev = opts.dev
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// openBackend builds the storage backend selected by the config.
func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	s := cfg.Store
	switch s.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(s.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.New("M010").WithDetailf("create %s: %v", dir, err).Wrap(err)
			}
		}
		b, err := storage.OpenSQLite(ctx, s.DSN)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.DriverS3:
		client := storage.NewS3Client(storage.S3ClientOptions{
			Region:          s.Region,
			Endpoint:        s.Endpoint,
			UsePathStyle:    s.PathStyle,
			AccessKeyID:     s.AccessKeyID,
			SecretAccessKey: s.SecretAccessKey,
		})
		return storage.NewS3Backend(client, s.Bucket, s.Prefix), nil
	default:
		return storage.NewMemoryBackend(), nil
	}
}

// mountTodo returns the session setup for the to-do app.
func mountTodo(cfg *config.Config) (server.MountFunc, error) {
	policy, err := component.ParseMountPolicy(cfg.MountPolicy)
	if err != nil {
		return nil, err
	}

	return func(s *server.Session) error {
		doc := s.Document()
		root := doc.CreateElement("div")
		root.SetID(component.DefaultRenderTarget)
		if err := doc.Body().AppendChild(root); err != nil {
			return err
		}

		compOpts := []component.Option{
			component.WithMountPolicy(policy),
			component.WithLogger(s.Logger()),
		}
		_, err := todo.Mount(s.Context(), doc, s.Storage(),
			todo.WithLogger(s.Logger()),
			todo.WithComponentOptions(compOpts...),
		)
		return err
	}, nil
}

func serve(ctx context.Context, cfg *config.Config, logOut io.Writer) error {
	logger := newLogger(cfg, logOut)
	slog.SetDefault(logger)

	if cfg.Reactive.MaxUpdateDepth > 0 {
		reactive.SetMaxUpdateDepth(cfg.Reactive.MaxUpdateDepth)
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing storage failed", "error", err)
		}
	}()

	mount, err := mountTodo(cfg)
	if err != nil {
		return err
	}

	srv := server.New(mount, server.Config{
		Addr:            cfg.Server.Addr,
		Title:           "Todo",
		Head:            "<style>" + todo.Stylesheet + "</style>",
		ReadLimit:       cfg.Server.ReadLimit,
		PingInterval:    cfg.PingInterval(),
		ShutdownTimeout: cfg.ShutdownTimeout(),
		Backend:         backend,
		DevMode:         cfg.Dev,
		Logger:          logger,
	})

	logger.Info("microtodo starting",
		"version", version,
		"store", cfg.Store.Driver,
		"mount_policy", cfg.MountPolicy,
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		return errors.New("M010").WithDetailf("serve %s: %v", cfg.Server.Addr, err).Wrap(err)
	}
	return nil
}
