// Package main provides the satchel CLI, a thin administrative front-end
// over the domain services. All business rules live in internal/service and
// internal/sqlite; commands only parse flags, call services, and print.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/auth"
	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/internal/service"
	"github.com/mesh-intelligence/satchel/internal/sqlite"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	// Global flag values.
	flagConfigDir string
	flagDataDir   string
	jsonOutput    bool

	// Store and services, initialized by openStore before every command
	// except version.
	store    *sqlite.Store
	users    *service.UserService
	labels   *service.LabelService
	memos    *service.MemoService
	contacts *service.ContactService
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "satchel",
	Short: "Satchel is a personal records keeper",
	Long: `Satchel manages users, memos, labels, and contacts in a single
embedded database file. It provides an administrative CLI over the
record-management core.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeStore() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.satchel-db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(memoCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(exportCmd)
}

// openStore resolves directories, loads config, opens the store, and wires
// the services.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store = sqlite.NewStore()
	if err := store.Open(types.Config{DataDir: dataDir}); err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	hasher := auth.NewBcryptHasher()
	users = service.NewUserService(store, hasher)
	labels = service.NewLabelService(store)
	memos = service.NewMemoService(store)
	contacts = service.NewContactService(store)
	return nil
}

// closeStore releases the store if a command opened it.
func closeStore() error {
	if store != nil {
		return store.Close()
	}
	return nil
}
