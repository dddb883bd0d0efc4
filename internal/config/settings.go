package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds the runtime options of the frontends. Gameplay rules are not
// part of it; see Rules.
type Settings struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json, logfmt
	LogFile   string // cmd/game only; empty discards logs so the screen stays clean

	AudioEnabled bool
	Seed         int64 // 0 picks a time-based seed

	Scores ScoreSettings
	SSH    SSHSettings
	Web    WebSettings
}

// ScoreSettings selects and configures the high-score backend.
type ScoreSettings struct {
	Backend     string // file, redis, postgres, memory
	FilePath    string
	RedisURL    string
	RedisKey    string
	PostgresDSN string
	TopN        int
}

// SSHSettings configures cmd/ssh.
type SSHSettings struct {
	Host        string
	Port        string
	HostKeyPath string
	DisplayHost string
}

// WebSettings configures cmd/web.
type WebSettings struct {
	Host         string
	Port         string
	RateLimitRPS float64
	RateBurst    int
	TrustProxy   bool // take the client IP from X-Forwarded-For
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	s := &Settings{
		LogLevel:     strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(GetEnv("LOG_FORMAT", "text")),
		LogFile:      GetEnv("LOG_FILE", ""),
		AudioEnabled: GetEnvBool("AUDIO_ENABLED", true),
		Seed:         int64(GetEnvInt("GAME_SEED", 0)),
		Scores: ScoreSettings{
			Backend:     strings.ToLower(GetEnv("SCORES_BACKEND", "file")),
			FilePath:    GetEnv("SCORES_FILE", "highscores.txt"),
			RedisURL:    GetEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisKey:    GetEnv("SCORES_REDIS_KEY", "asteroids:highscores"),
			PostgresDSN: GetEnv("DATABASE_URL", "postgres://localhost:5432/asteroids?sslmode=disable"),
			TopN:        GetEnvInt("SCORES_TOP_N", 3),
		},
		SSH: SSHSettings{
			Host:        GetEnv("SSH_HOST", "::"),
			Port:        GetEnv("SSH_PORT", "2222"),
			HostKeyPath: GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
			DisplayHost: GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		},
		Web: WebSettings{
			Host:         GetEnv("WEB_HOST", "0.0.0.0"),
			Port:         GetEnv("WEB_PORT", "8080"),
			RateLimitRPS: GetEnvFloat("WEB_RATE_LIMIT_RPS", 5),
			RateBurst:    GetEnvInt("WEB_RATE_LIMIT_BURST", 10),
			TrustProxy:   GetEnvBool("WEB_TRUST_PROXY", false),
		},
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", s.LogFormat)
	}
	if s.Scores.TopN < 1 {
		return fmt.Errorf("SCORES_TOP_N must be positive, got %d", s.Scores.TopN)
	}
	if s.Web.RateLimitRPS <= 0 || s.Web.RateBurst < 1 {
		return errors.New("web rate limit must be positive")
	}
	return nil
}
