package command

// root.go defines the root command for yamdbCLI and the on-disk configuration.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yamdb/cmd/cli/command/client"
)

const (
	keyAPIURL = "api_url"
	keyToken  = "token"
	keyEmail  = "email"
)

var cfgFile string // config file path

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yamdbCLI",
	Short: "yamdbCLI - YaMDb Command Line Interface",
	Long: `yamdbCLI talks to the YaMDb API. With it you can:
- Sign in with a confirmation code sent to your email
- Browse titles, categories and genres
- Write reviews and comment on them
- Manage users and the catalog when you are an admin

Settings live in $HOME/.yamdb/config.yaml and can be overridden with YAMDB_* variables.

Use "yamdbCLI command --help" to see all available commands.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return initConfig() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.yamdb/config.yaml)")
	rootCmd.PersistentFlags().String("api", "http://localhost:8080", "API server URL")
	viper.BindPFlag(keyAPIURL, rootCmd.PersistentFlags().Lookup("api"))

	rootCmd.AddCommand(authCmd, meCmd, userCmd, titleCmd, reviewCmd, commentCmd)
	rootCmd.AddCommand(newSlugCommand("category", "categories"), newSlugCommand("genre", "genres"))
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".yamdb", "config.yaml"), nil
}

// initConfig reads the config file when present; a missing file is not an error.
func initConfig() error {
	if cfgFile == "" {
		path, err := defaultConfigPath()
		if err != nil {
			return err
		}
		cfgFile = path
	}
	viper.SetConfigFile(cfgFile)
	viper.SetEnvPrefix("yamdb")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

// saveSession persists the token and the email it was issued for.
func saveSession(token, email string) error {
	viper.Set(keyToken, token)
	viper.Set(keyEmail, email)
	if err := os.MkdirAll(filepath.Dir(cfgFile), 0o700); err != nil {
		return err
	}
	return viper.WriteConfigAs(cfgFile)
}

// newClient returns an API client carrying the saved token, if any.
func newClient() *client.HTTPClient {
	c := client.NewHTTPClient(viper.GetString(keyAPIURL))
	c.SetToken(viper.GetString(keyToken))
	return c
}
