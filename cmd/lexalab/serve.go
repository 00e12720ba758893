package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/lexalab/internal/config"
	"github.com/jonathan/lexalab/internal/logger"
	"github.com/jonathan/lexalab/internal/phrases"
	"github.com/jonathan/lexalab/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	servePort  int
	configFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the phrase analyzer and the profile store.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT and the config file)")
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	srv, err := newServer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

// newServer builds the server from the resolved configuration.
func newServer(cfg config.Config, log *logrus.Logger) (*server.Server, error) {
	catalog, err := loadCatalog(cfg.PhrasesFile)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"rules":        catalog.Len(),
		"phrases_file": cfg.PhrasesFile,
	}).Info("phrase catalog loaded")

	return server.New(server.Config{
		Port:    cfg.Port,
		Catalog: catalog,
		Logger:  log,
	})
}

// loadCatalog returns the catalog at path, or the built-in one when path is empty.
func loadCatalog(path string) (*phrases.Catalog, error) {
	if path == "" {
		return phrases.DefaultCatalog(), nil
	}
	catalog, err := phrases.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrase catalog: %w", err)
	}
	return catalog, nil
}
