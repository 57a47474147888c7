package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	"github.com/dayloop/dayloop/internal/logger"
	"github.com/dayloop/dayloop/types"
)

const (
	configName = ".dayloop"
	envPrefix  = "DAYLOOP"
)

// globalAppConfig holds the unmarshaled application configuration.
var globalAppConfig types.AppConfig

// validate caches struct info across config validations.
var validate = validator.New()

// GetConfig returns the effective application configuration.
func GetConfig() types.AppConfig {
	return globalAppConfig
}

// InitConfig reads in the config file and environment variables.
func InitConfig() {
	// A .env file may carry DAYLOOP_* variables; absence is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
	}

	if err := viper.Unmarshal(&globalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}
	if err := validate.Struct(&globalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	logger.SetBasePath(globalAppConfig.Project.RootDir)
}

func setDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	viper.SetDefault("project.rootDir", home+"/.dayloop")
	viper.SetDefault("data.file", "dayloop.json")
	viper.SetDefault("data.format", "json")

	viper.SetDefault("planner.progressiveTasksPerDay", 1)
	viper.SetDefault("planner.progressiveDaysForWeekWin", 3)
	viper.SetDefault("planner.dayFulfillmentThreshold", 40)
	viper.SetDefault("planner.reminderLeadMinutes", 10)
	viper.SetDefault("planner.dateOfBirth", "")

	viper.SetDefault("watch.tickSeconds", 15)
	viper.SetDefault("watch.notifyCommand", "")
	viper.SetDefault("watch.notifyArgs", []string{})
}

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(GetConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
