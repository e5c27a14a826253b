// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the vault server configuration
type Config struct {
	HTTPPort      int    `mapstructure:"http_port"`
	DBPath        string `mapstructure:"db_path"`
	UploadsDir    string `mapstructure:"uploads_dir"`
	LogFile       string `mapstructure:"log_file"`
	OCRLanguage   string `mapstructure:"ocr_language"`
	Institution   string `mapstructure:"institution"`
	WorkerCount   int    `mapstructure:"worker_count"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPassword string `mapstructure:"redis_password"`
}

// LoadConfig loads configuration from an optional YAML file and the
// environment (VAULT_ prefix). Missing file falls back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	viper.SetDefault("http_port", 8080)
	viper.SetDefault("db_path", "./vault.db")
	viper.SetDefault("uploads_dir", "./uploads")
	viper.SetDefault("log_file", "vault-server.log")
	viper.SetDefault("ocr_language", "eng")
	viper.SetDefault("institution", "GITAM")
	viper.SetDefault("worker_count", 3)
	viper.SetDefault("redis_addr", "127.0.0.1:6379")
	viper.SetDefault("redis_db", 0)
	viper.SetDefault("redis_password", "")

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			log.Printf("No config file found, using defaults")
		}
	}

	viper.SetEnvPrefix("VAULT")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.OCRLanguage == "" {
		config.OCRLanguage = "eng"
		log.Printf("OCR language was empty, defaulting to: %s", config.OCRLanguage)
	}
	if config.Institution == "" {
		config.Institution = "GITAM"
		log.Printf("Institution anchor was empty, defaulting to: %s", config.Institution)
	}

	return &config, nil
}
