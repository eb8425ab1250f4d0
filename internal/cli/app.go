package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nadissa1508/CC3089-LAB-4/internal/config"
	"github.com/nadissa1508/CC3089-LAB-4/internal/httpx"
	"github.com/nadissa1508/CC3089-LAB-4/internal/ingest"
	"github.com/nadissa1508/CC3089-LAB-4/internal/logger"
	mdb "github.com/nadissa1508/CC3089-LAB-4/internal/mongo"
)

// Database is everything the commands need from a connected client.
type Database interface {
	ingest.Target
	httpx.Catalog
	Close(ctx context.Context)
}

type Connector func(ctx context.Context, co mdb.ConnectOptions) (Database, error)

// App carries the process dependencies so tests can replace them.
type App struct {
	Out     io.Writer
	Err     io.Writer
	Connect Connector
	Config  func() (config.Config, error)
	// NewLogger overrides the logger built from configuration.
	NewLogger func(cfg config.Config) logrus.FieldLogger

	insecureFallback bool
	datasetsFile     string
	loadOnStart      bool
}

func NewApp() *App {
	return &App{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Connect:   connectMongo,
		Config:    func() (config.Config, error) { return config.Load() },
		NewLogger: defaultLogger,
	}
}

func defaultLogger(cfg config.Config) logrus.FieldLogger {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func connectMongo(ctx context.Context, co mdb.ConnectOptions) (Database, error) {
	c, err := mdb.Connect(ctx, co)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Run executes the command line and returns the process exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		if errors.Is(err, mdb.ErrConnect) {
			printGuidance(a.Err)
		}
		return 1
	}
	return 0
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lab4",
		Short: "Load the restaurants and ratings CSV datasets into MongoDB",
		Long: `lab4 reads the restaurants and ratings CSV files, drops rows missing
their key fields and replaces the matching MongoDB collections with the rest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runLoad,
	}
	root.PersistentFlags().BoolVar(&a.insecureFallback, "insecure-fallback", true,
		"retry without TLS certificate verification when the verified connection fails (overrides MONGO_ALLOW_INSECURE_FALLBACK)")
	root.PersistentFlags().StringVar(&a.datasetsFile, "datasets", "", "YAML dataset manifest (overrides DATASETS_FILE)")

	root.AddCommand(&cobra.Command{
		Use:   "load",
		Short: "Replace the dataset collections with the CSV contents",
		RunE:  a.runLoad,
	})

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loaded collections over HTTP and reload them on a schedule",
		RunE:  a.runServe,
	}
	serve.Flags().BoolVar(&a.loadOnStart, "load-on-start", false, "run one full load before serving")
	root.AddCommand(serve)
	return root
}

// setup resolves configuration with flag overrides applied and builds the logger.
func (a *App) setup(cmd *cobra.Command) (config.Config, logrus.FieldLogger, error) {
	cfg, err := a.Config()
	if err != nil {
		return config.Config{}, nil, err
	}
	if f := cmd.Flags().Lookup("insecure-fallback"); f != nil && f.Changed {
		cfg.AllowInsecureFallback = a.insecureFallback
	}
	if f := cmd.Flags().Lookup("datasets"); f != nil && f.Changed {
		cfg.DatasetsFile = a.datasetsFile
	}

	var log logrus.FieldLogger
	if a.NewLogger != nil {
		log = a.NewLogger(cfg)
	} else {
		log = logger.NewWithOutput(cfg.LogLevel, cfg.LogFormat, a.Err)
	}
	return cfg, log, nil
}

func (a *App) connect(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (Database, error) {
	return a.Connect(ctx, mdb.ConnectOptions{
		URI:                   cfg.MongoURI,
		Database:              cfg.MongoDB,
		CAFile:                cfg.MongoTLSCAFile,
		Timeout:               cfg.ConnectTimeout,
		AllowInsecureFallback: cfg.AllowInsecureFallback,
		Progress:              a.Out,
		Log:                   logger.WithComponent(log, "mongo"),
	})
}

func printGuidance(w io.Writer) {
	fmt.Fprintln(w, "\nPossible fixes:")
	fmt.Fprintln(w, "  - Check the connection string (MONGO_URI) in your .env file")
	fmt.Fprintln(w, "  - Point MONGO_TLS_CA_FILE at a CA bundle that trusts the server certificate")
	fmt.Fprintln(w, "  - Add tlsAllowInvalidCertificates=true to the connection string (development only)")
	fmt.Fprintln(w, "  - Make sure the password is URL-encoded and has no surrounding <>")
}
