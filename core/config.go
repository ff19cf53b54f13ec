package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	StorageCSV      = "csv"
	StoragePostgres = "postgres"
)

type (
	Config struct {
		Env          string
		AppName      string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string

		DataDir      string
		RecordsFile  string
		SettingsFile string
		Storage      string // csv | postgres

		Server   ServerConfig
		Serial   SerialConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Address         string
		Host            string
		DisableReqLogs  bool
		ShutdownTimeout time.Duration
	}

	SerialConfig struct {
		Port     string // empty: auto-detect
		BaudRate int
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
)

func (dc DatabaseConfig) Address() string {
	return dc.Host + ":" + dc.Port
}

// RecordsPath is the absolute path of the attendance CSV file.
func (c *Config) RecordsPath() string {
	return filepath.Join(c.DataDir, c.RecordsFile)
}

// SettingsPath is the absolute path of the persisted settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, c.SettingsFile)
}

// defaultDataDir mirrors the desktop app's writable location: ~/Documents/RecordSync.
func defaultDataDir() string {
	home := os.Getenv("USERPROFILE")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if home == "" {
		return "RecordSync"
	}
	return filepath.Join(home, "Documents", "RecordSync")
}

// NewConfig loads the application configuration.
// Precedence: RECORDSYNC_* env vars > config/.env.<env> > defaults.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "RecordSync")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("dataDir", defaultDataDir())
	v.SetDefault("recordsFile", "Students_Data.csv")
	v.SetDefault("settingsFile", "settings.json")
	v.SetDefault("storage", StorageCSV)
	v.SetDefault("server.address", "127.0.0.1:8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("serial.port", "")
	v.SetDefault("serial.baudRate", 9600)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "recordsync")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
		}
	}

	v.SetEnvPrefix("RECORDSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		DataDir:      v.GetString("dataDir"),
		RecordsFile:  v.GetString("recordsFile"),
		SettingsFile: v.GetString("settingsFile"),
		Storage:      strings.ToLower(v.GetString("storage")),
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			Host:            v.GetString("server.host"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Serial: SerialConfig{
			Port:     v.GetString("serial.port"),
			BaudRate: v.GetInt("serial.baudRate"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
	}

	switch conf.Storage {
	case StorageCSV, StoragePostgres:
	default:
		return nil, errors.Errorf("unknown storage %q", conf.Storage)
	}
	return conf, nil
}
