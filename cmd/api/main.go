package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsroom/internal/config"
	"newsroom/internal/observability/logging"

	_ "newsroom/docs" // swagger docs
)

// @title           Newsroom API
// @version         1.0
// @description     社内ニュース記事ストアの REST API
// @description     記事の作成・一覧・取得・更新・削除と、画像のアセットホストへのアップロードを提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証（auth.enabled 時のみ）。ヘッダーに "Bearer {token}" 形式で指定してください。

const defaultConfigPath = "config/newsroom.yaml"

type rootOptions struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "newsroom-api",
		Short:         "News article store REST API",
		Long:          "Serves the news article store and uploads article images to the configured asset host.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv(opts.envFile)
		},
		// サブコマンド省略時は serve
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file (default "+defaultConfigPath+" if present)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config; missing files are ignored")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts))
	return root
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath returns the explicit path, the NEWSROOM_CONFIG variable,
// or the default file when it exists. Empty means defaults plus environment.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("NEWSROOM_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// bootstrap loads the configuration and installs the process logger.
func bootstrap(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	path := resolveConfigPath(opts.configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	if path != "" {
		logger.Debug("config loaded", slog.String("path", path))
	}
	return cfg, logger, nil
}
