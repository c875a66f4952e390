package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"finnadmin/internal/config"
	"finnadmin/internal/gateway"
	"finnadmin/internal/logging"
	"finnadmin/internal/session"
)

var (
	// Global flags
	verbose    bool
	baseURL    string
	tokenFlag  string
	timeoutSec int
	configPath string

	// Loaded in PersistentPreRunE, shared by all commands
	cfg *config.UserConfig
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "finnadmin",
	Short: "finnadmin - FinnBourse actor administration",
	Long: `finnadmin manages the financial actors of a FinnBourse deployment:
agencies, account custodians (TCC), clients and stock-exchange
intermediaries (IOB), together with their related users.

Resource commands offer list/show for inspection and an interactive
form wizard for provisioning. The wizard creates the primary entity at
the first step boundary so related users can be attached to a real
backend identity as they are added.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseURL != "" {
			cfg.RestAPIURL = baseURL
			cfg.MenuAPIURL = baseURL
		}
		if timeoutSec > 0 {
			cfg.TimeoutSeconds = timeoutSec
		}
		if err := logging.Initialize(logging.Options{Verbose: verbose}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// tokens resolves the bearer-token source: explicit flag first, then
// the environment/token-file store.
func tokens() session.TokenSource {
	if tokenFlag != "" {
		return session.StaticToken(tokenFlag)
	}
	return session.NewStore(session.DefaultTokenPath())
}

// newClient builds the REST gateway client from the effective config.
func newClient() *gateway.Client {
	return gateway.New(cfg.RestAPIURL, tokens(),
		gateway.WithTimeout(cfg.RequestTimeout()))
}

func requestTimeout() time.Duration {
	return cfg.RequestTimeout()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "REST API base URL (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token (or set FINNADMIN_TOKEN)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "Request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultUserConfigPath(), "Config file path")

	rootCmd.AddCommand(agenceCmd)
	rootCmd.AddCommand(tccCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(iobCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(authCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
