// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitkumar0/Imagegenenerator-sub002/cli/config"
	"github.com/ajitkumar0/Imagegenenerator-sub002/client"
	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
	"github.com/ajitkumar0/Imagegenenerator-sub002/credstore"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates an API client using CLI config context.
type ClientFactory func(cfg *config.Config, apiURL string, store core.CredentialStore) (*client.Client, error)

// StoreFactory creates a credential store instance.
type StoreFactory func() (core.CredentialStore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig ConfigLoader
	newClient  ClientFactory
	newStore   StoreFactory
	stdin       io.Reader
	stdinReader *bufio.Reader
	stdout      io.Writer
	stderr      io.Writer

	cfgFile    string
	apiURL     string
	jsonOutput bool
	verbose    bool
	cfg        *config.Config

	generatePrompt   string
	generateNegative string
	generateModel    string
	generateWait     bool
	imgSource        string
	imgStrength      float64
	listLimit        int
	listOffset       int
	listStatus       string
	downloadOut      string
	subAtPeriodEnd   bool
	usageHistoryDays int
	usageModels      bool
	usageExport      bool
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithStoreFactory injects a credential store factory dependency.
func WithStoreFactory(factory StoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newStore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig: config.LoadConfig,
		newStore:   defaultStoreFactory,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	a.newClient = a.defaultClientFactory

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "imagegen",
		Short: "Imagegen - image generation API client",
		Long: `Imagegen is a command-line interface for the image-generation API.

Use imagegen to log in, submit generations, track their progress, and
inspect your subscription and usage.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.imagegen/config.yaml)")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides config and IMAGEGEN_API_URL)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newLoginCommand())
	root.AddCommand(a.newLogoutCommand())
	root.AddCommand(a.newWhoamiCommand())
	root.AddCommand(a.newGenerateCommand())
	root.AddCommand(a.newImg2ImgCommand())
	root.AddCommand(a.newStatusCommand())
	root.AddCommand(a.newListCommand())
	root.AddCommand(a.newCancelCommand())
	root.AddCommand(a.newDeleteCommand())
	root.AddCommand(a.newDownloadCommand())
	root.AddCommand(a.newSubscriptionCommand())
	root.AddCommand(a.newUsageCommand())
	root.AddCommand(a.newHealthCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// resolveAPIURL picks the effective base URL: flag, then config, then
// environment.
func (a *App) resolveAPIURL() (string, error) {
	if a.apiURL != "" {
		return a.apiURL, nil
	}
	if a.cfg != nil && a.cfg.APIURL != "" {
		return a.cfg.APIURL, nil
	}
	if env := os.Getenv(client.BaseURLEnvVar); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("API URL required: use --api-url, set api_url in config, or set %s", client.BaseURLEnvVar)
}

// apiClient builds a ready-to-use client from the resolved config.
func (a *App) apiClient() (*client.Client, error) {
	baseURL, err := a.resolveAPIURL()
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	store, err := a.newStore()
	if err != nil {
		return nil, exitWithCode(ExitValidation, fmt.Errorf("failed to open credential store: %w", err))
	}

	c, err := a.newClient(a.cfg, baseURL, store)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return c, nil
}

func (a *App) defaultClientFactory(cfg *config.Config, apiURL string, store core.CredentialStore) (*client.Client, error) {
	httpClient := http.DefaultClient
	if cfg != nil && cfg.TimeoutSeconds > 0 {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}

	var refresher client.TokenRefresher
	if cfg != nil && cfg.AuthRefreshURL != "" {
		refresher = client.NewEndpointRefresher(cfg.AuthRefreshURL, httpClient)
	}

	opts := []client.Option{
		client.WithHTTPClient(httpClient),
		client.WithCredentialStore(store),
		client.WithSessionHooks(sessionNotice{w: a.stderr}),
	}
	if a.verbose {
		opts = append(opts, client.WithErrorSink(verboseSink{w: a.stderr}))
	}

	return client.New(apiURL, refresher, opts...), nil
}

func defaultStoreFactory() (core.CredentialStore, error) {
	store, err := credstore.Open()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// sessionNotice tells the user their session is gone when a refresh
// fails for good.
type sessionNotice struct {
	w io.Writer
}

func (s sessionNotice) OnSessionExpired() {
	fmt.Fprintln(s.w, "Session expired. Run 'imagegen login' to sign in again.")
}

// verboseSink logs every surfaced failure's classification.
type verboseSink struct {
	w io.Writer
}

func (v verboseSink) OnError(info core.ErrorInfo) {
	fmt.Fprintf(v.w, "[%s/%s] %s\n", info.Kind, info.Severity, info.Message)
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
