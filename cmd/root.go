package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/logger"
)

const (
	app = "cofounder-match"
)

type Config struct {
	Source         *SourceConfig `mapstructure:"source" validate:"required"`
	DecisionsFile  string        `mapstructure:"decisions-file"`
	MinimumScore   int           `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	ShowIncomplete bool          `mapstructure:"show-incomplete"`
}

// SourceConfig selects where founders come from: a profiles dump or the backend API.
// A profiles dump wins when both are set.
type SourceConfig struct {
	File string     `mapstructure:"file" validate:"required_without=API"`
	API  *APIConfig `mapstructure:"api" validate:"required_without=File"`
	// Me is the current founder id or email. Required for a file source; the
	// API falls back to the token owner.
	Me string `mapstructure:"me" validate:"required_with=File"`
}

type APIConfig struct {
	URL        string `mapstructure:"url" validate:"omitempty,url"`
	TokenFile  string `mapstructure:"token-file"`
	// MaxRetries of 0 turns retries off; unset keeps the client default.
	MaxRetries *int   `mapstructure:"max-retries" validate:"omitempty,gte=0,lte=10"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cofounder-match scores and ranks potential co-founders against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A missing .env is fine, the environment may be set by other means.
	_ = godotenv.Load()

	if err := viper.BindEnv("source.api.token-file", "COFOUNDER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding COFOUNDER_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("source.api.url", "COFOUNDER_API_URL"); err != nil {
		log.Fatalf("binding COFOUNDER_API_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cofounder-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("me", "", "current founder id or email")
	rootCmd.PersistentFlags().String("profiles", "", "profiles dump to read founders from instead of the config source")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("source.me", rootCmd.PersistentFlags().Lookup("me"))
	viper.BindPFlag("source.file", rootCmd.PersistentFlags().Lookup("profiles"))
}

func initConfig() {
	// Only commands working with founders need a config.
	if discoverCmd.CalledAs() == "" && scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Flags alone are enough when no config file exists.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("invalid config: %s", validationErrors.Error())
		}
		return err
	}
	return nil
}

func newLogger() *zap.Logger {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return lg
}
