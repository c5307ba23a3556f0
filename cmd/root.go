package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

var RootCmd = &cobra.Command{
	Use:   "db-bridge",
	Short: "A multi-engine database administration server",
	Long: `
  ____  ____    ____  ____  ___ ____   ____ _____
 |  _ \| __ )  | __ )|  _ \|_ _|  _ \ / ___| ____|
 | | | |  _ \  |  _ \| |_) || || | | | |  _|  _|
 | |_| | |_) | | |_) |  _ < | || |_| | |_| | |___
 |____/|____/  |____/|_| \_\___|____/ \____|_____|

DB BRIDGE - one operation catalog over MySQL and PostgreSQL
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-bridge.yaml)")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	RootCmd.PersistentFlags().String("engine", "", "database engine (mysql or postgres)")
	RootCmd.PersistentFlags().String("host", "", "database host")
	RootCmd.PersistentFlags().Int("port", 0, "database port")
	RootCmd.PersistentFlags().String("user", "", "database user")
	RootCmd.PersistentFlags().String("password", "", "database password")
	RootCmd.PersistentFlags().String("database", "", "database name")

	// Bind flags to viper (Flag > Config > Env)
	viper.BindPFlag("database.engine", RootCmd.PersistentFlags().Lookup("engine"))
	viper.BindPFlag("database.host", RootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("database.port", RootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("database.user", RootCmd.PersistentFlags().Lookup("user"))
	viper.BindPFlag("database.password", RootCmd.PersistentFlags().Lookup("password"))
	viper.BindPFlag("database.name", RootCmd.PersistentFlags().Lookup("database"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-bridge")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DB_BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger writes to stderr; stdout carries the MCP protocol.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
