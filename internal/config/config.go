package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	DBPath      string           `json:"db_path"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	LogConfig   logger.LogConfig `json:"log_config"`
	CORSOrigins []string         `json:"cors_origins"`
	FileStore   FileStoreConfig  `json:"file_store"`
	Parser      ParserConfig     `json:"parser"`
	AI          AIConfig         `json:"ai"`
	Detector    VendorConfig     `json:"detector"`
	Speech      SpeechConfig     `json:"speech"`
	Session     SessionConfig    `json:"session"`
}

type FileStoreConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// ParserConfig points at the external PDF/DOCX parse service.
type ParserConfig struct {
	BaseURL     string `json:"base_url"`
	TimeoutSecs int    `json:"timeout_seconds"`
	MaxUploadMB int64  `json:"max_upload_mb"`
}

type AIConfig struct {
	Provider      string                 `json:"provider"`
	Model         string                 `json:"model"`
	MaxInputChars int                    `json:"max_input_chars"`
	TimeoutSecs   int                    `json:"timeout_seconds"`
	Data          map[string]interface{} `json:"data"`
}

type VendorConfig struct {
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url"`
	TimeoutSecs int    `json:"timeout_seconds"`
}

type SpeechConfig struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	TimeoutSecs  int    `json:"timeout_seconds"`
	DefaultVoice string `json:"default_voice"`
}

type SessionConfig struct {
	TTLMinutes int `json:"ttl_minutes"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		if cfg.FileStore.Data == nil {
			cfg.FileStore.Data = map[string]interface{}{"dir": "./data/files"}
		}
	}
	if cfg.Parser.BaseURL == "" {
		return nil, fmt.Errorf("parser.base_url is required")
	}
	if cfg.Parser.MaxUploadMB == 0 {
		cfg.Parser.MaxUploadMB = 32
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.0-flash-001"
	}
	if cfg.AI.MaxInputChars == 0 {
		cfg.AI.MaxInputChars = 100000
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 120
	}
	return &cfg, nil
}
