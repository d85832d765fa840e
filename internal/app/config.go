package app

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/novibenocode/novibe-backend/internal/logger"
	"github.com/novibenocode/novibe-backend/internal/utils"
)

type Config struct {
	Addr            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	StartingCredits int
	ProviderMode    string // "gemini" or "mock"
	AllowOrigins    []string
}

// fileConfig is the optional config.yaml overlay. Anything set here wins
// over the environment defaults.
type fileConfig struct {
	Addr            string   `yaml:"addr"`
	JWTSecretKey    string   `yaml:"jwt_secret_key"`
	AccessTokenTTL  int      `yaml:"access_token_ttl"`
	RefreshTokenTTL int      `yaml:"refresh_token_ttl"`
	StartingCredits *int     `yaml:"starting_credits"`
	ProviderMode    string   `yaml:"provider_mode"`
	AllowOrigins    []string `yaml:"allow_origins"`
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 2592000, log)

	cfg := Config{
		Addr:            utils.GetEnv("ADDR", ":8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		StartingCredits: utils.GetEnvAsInt("STARTING_CREDITS", 3, log),
		ProviderMode:    strings.ToLower(utils.GetEnv("AI_PROVIDER_MODE", "gemini", log)),
		AllowOrigins:    splitOrigins(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)),
	}

	path := utils.GetEnv("CONFIG_FILE", "config.yaml", log)
	if fc, ok := loadConfigFile(path, log); ok {
		applyOverlay(&cfg, fc)
	}
	return cfg
}

func loadConfigFile(path string, log *logger.Logger) (fileConfig, bool) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Failed to read config file", "path", path, "error", err)
		}
		return fc, false
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Warn("Failed to parse config file", "path", path, "error", err)
		return fc, false
	}
	log.Info("Loaded config overlay", "path", path)
	return fc, true
}

func applyOverlay(cfg *Config, fc fileConfig) {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTL > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTL) * time.Second
	}
	if fc.RefreshTokenTTL > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTL) * time.Second
	}
	if fc.StartingCredits != nil {
		cfg.StartingCredits = *fc.StartingCredits
	}
	if fc.ProviderMode != "" {
		cfg.ProviderMode = strings.ToLower(fc.ProviderMode)
	}
	if len(fc.AllowOrigins) > 0 {
		cfg.AllowOrigins = fc.AllowOrigins
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
