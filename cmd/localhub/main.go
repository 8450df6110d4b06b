package main

import (
	"context"
	_ "expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	gometrics "github.com/docker/go-metrics"
	gorhandlers "github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/localhub/localhub/configuration"
	"github.com/localhub/localhub/hub/handlers"
	"github.com/localhub/localhub/hub/storage"
	"github.com/localhub/localhub/internal/dcontext"
	"github.com/localhub/localhub/version"
)

var showVersion bool

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show the version and exit")
}

// rootCmd is the main command for the 'localhub' binary.
var rootCmd = &cobra.Command{
	Use:   "localhub",
	Short: "localhub serves a local directory tree as a model hub",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			version.PrintVersion()
			return
		}
		// nolint:errcheck
		cmd.Usage()
	},
}

// serveCmd runs the hub server with the given configuration file.
var serveCmd = &cobra.Command{
	Use:   "serve <config>",
	Short: "serve the hub",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := resolveConfiguration(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
			// nolint:errcheck
			cmd.Usage()
			os.Exit(1)
		}

		if err := serve(config); err != nil {
			logrus.Fatalln(err)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfiguration(path string) (*configuration.Configuration, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	config, err := configuration.Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return config, nil
}

func serve(config *configuration.Configuration) error {
	ctx, err := configureLogging(context.Background(), config)
	if err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}

	store, err := storage.FromParameters(config.Storage.Parameters(), storage.CacheOptions{
		TTL:           time.Duration(config.Cache.TTL),
		PathsInfoSize: config.Cache.PathsInfo,
		SiblingsSize:  config.Cache.Siblings,
		SHA256Size:    config.Cache.SHA256,
	})
	if err != nil {
		return fmt.Errorf("error configuring storage: %w", err)
	}

	app := handlers.NewApp(ctx, config, store)
	handler := gorhandlers.CombinedLoggingHandler(os.Stdout, app)

	if config.HTTP.Debug.Addr != "" {
		go debugServer(ctx, config.HTTP.Debug.Addr)
	}

	server := &http.Server{
		Addr:    config.HTTP.Addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		dcontext.GetLogger(app).Infof("listening on %v, root %s", config.HTTP.Addr, store.Root())
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		dcontext.GetLogger(app).Infof("received %v, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func configureLogging(ctx context.Context, config *configuration.Configuration) (context.Context, error) {
	level := logrus.InfoLevel
	if config.Log.Level != "" {
		parsed, err := logrus.ParseLevel(string(config.Log.Level))
		if err != nil {
			return ctx, err
		}
		level = parsed
	}
	logrus.SetLevel(level)

	switch config.Log.Formatter {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return ctx, fmt.Errorf("unsupported log formatter: %q", config.Log.Formatter)
	}

	fields := logrus.Fields{}
	for k, v := range config.Log.Fields {
		fields[k] = v
	}
	entry := logrus.WithFields(fields)
	dcontext.SetDefaultLogger(entry)
	ctx = dcontext.WithLogger(ctx, entry)

	return ctx, nil
}

// debugServer exposes pprof, expvar and the prometheus metrics endpoint on a
// separate listener.
func debugServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/debug/", http.DefaultServeMux)
	mux.Handle("/metrics", gometrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		dcontext.GetLogger(ctx).Fatalf("error listening on debug interface: %v", err)
	}
}
