package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/logger"
)

const (
	app = "atsctl"
)

type Config struct {
	KeywordsFile string `mapstructure:"keywords-file"`
	Debug        bool   `mapstructure:"debug"`
	JSON         bool   `mapstructure:"json"`
}

type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          app,
		Short:        "atsctl scores CV files for ATS compatibility without the API",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "a config file (default is atsctl.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("keywords-file", "", "YAML keyword dictionary replacing the built-in one")

	_ = opts.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = opts.v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = opts.v.BindPFlag("keywords-file", rootCmd.PersistentFlags().Lookup("keywords-file"))
	_ = opts.v.BindEnv("keywords-file", "KEYWORDS_FILE")

	rootCmd.AddCommand(
		newScoreCmd(opts),
		newKeywordsCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// initConfig reads the config file. A missing default file is not an error.
func (o *rootOptions) initConfig() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", o.cfgFile, err)
		}
		return nil
	}

	o.v.AddConfigPath(".")
	o.v.SetConfigName(app)
	o.v.SetConfigType("yaml")

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (o *rootOptions) getConfig() (*Config, error) {
	var config Config
	if err := o.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &config, nil
}

// logger writes to stderr so command output on stdout stays parseable.
func (o *rootOptions) logger(config *Config) (*zap.Logger, error) {
	return logger.New(config.JSON, config.Debug, "stderr")
}

func (o *rootOptions) dictionary(config *Config) (*ats.Dictionary, error) {
	if config.KeywordsFile == "" {
		return ats.DefaultDictionary(), nil
	}
	return ats.LoadDictionary(config.KeywordsFile)
}
