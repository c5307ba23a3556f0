package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Engine   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// GetDBConfig resolves the database configuration (flag > config file > env)
// and validates it. Every field except the password is required; a missing
// port in particular is a fatal startup error, never defaulted.
func GetDBConfig() (*DBConfig, error) {
	cfg := DBConfig{
		Engine:   viper.GetString("database.engine"),
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		Name:     viper.GetString("database.name"),
	}

	if cfg.Engine == "" {
		return nil, fmt.Errorf("database.engine is required (mysql or postgres)")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("database.host is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("database.port is required")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("database.user is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("database.name is required")
	}

	return &cfg, nil
}
