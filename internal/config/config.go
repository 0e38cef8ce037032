package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	Coach     CoachConfig     `mapstructure:"coach"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type RemindersConfig struct {
	ServiceURL  string `mapstructure:"service_url" validate:"omitempty,url"`
	APIKey      string `mapstructure:"api_key"`
	LeadMinutes int    `mapstructure:"lead_minutes" validate:"gte=0"`
	Timezone    string `mapstructure:"timezone" validate:"timezone"`
	MaxAttempts uint   `mapstructure:"max_attempts" validate:"gte=1"`
}

type CoachConfig struct {
	PomodoroMinutes int `mapstructure:"pomodoro_minutes" validate:"gt=0"`
	BreakMinutes    int `mapstructure:"break_minutes" validate:"gt=0"`
	PlanHorizonDays int `mapstructure:"plan_horizon_days" validate:"gt=0"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studycoach")
	}

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "studycoach")
	v.SetDefault("database.username", "studycoach")
	v.SetDefault("reminders.lead_minutes", 1440)
	v.SetDefault("reminders.timezone", "America/New_York")
	v.SetDefault("reminders.max_attempts", 3)
	v.SetDefault("coach.pomodoro_minutes", 25)
	v.SetDefault("coach.break_minutes", 5)
	v.SetDefault("coach.plan_horizon_days", 7)

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "STUDYCOACH_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYCOACH_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("reminders.api_key", "STUDYCOACH_REMINDERS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYCOACH_REMINDERS_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
