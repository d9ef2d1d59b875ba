package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	RCFile             string        // path to the RC link file
	DataDir            string        // directory for memos.json / readlater.json
	ReloadInterval     time.Duration // periodic RC file reload (on top of fsnotify)
	WatchRCFile        bool          // watch the RC file for external edits
	KeepSpecialFolders bool          // keep toolbar/other/mobile folders as path segments on import
	MaxImportBytes     int64         // upload size cap for bookmark imports

	BackupRetention     time.Duration // how long timestamped .bak copies are kept
	BackupSweepInterval time.Duration // how often old backups are pruned

	AllowedOrigins []string // CORS allow-list, empty = same-origin only

	RateLimitBurst  int  // token bucket burst per client IP
	RateLimitPerMin int  // refill per client IP per minute
	TrustProxy      bool // true => trust X-Forwarded-For headers

	// Redis (optional, empty addr disables click-count sync)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration
	RedisRT             time.Duration
	RedisWT             time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	RedisWarnThreshold  int
}

// fileConfig mirrors the optional YAML config file. Pointer fields so
// absent keys keep the built-in defaults; env vars override both.
type fileConfig struct {
	ListenPort         *string `yaml:"listen_port"`
	LogLevel           *string `yaml:"log_level"`
	PrettyLog          *bool   `yaml:"pretty_log"`
	RCFile             *string `yaml:"rc_file"`
	DataDir            *string `yaml:"data_dir"`
	ReloadInterval     *string `yaml:"reload_interval"`
	WatchRCFile        *bool   `yaml:"watch_rc_file"`
	KeepSpecialFolders *bool   `yaml:"keep_special_folders"`
	AllowedOrigins     *string `yaml:"allowed_origins"`
	TrustProxy         *bool   `yaml:"trust_proxy"`

	Redis struct {
		Addr     *string `yaml:"addr"`
		User     *string `yaml:"user"`
		Password *string `yaml:"password"`
		DB       *int    `yaml:"db"`
	} `yaml:"redis"`
}

func Load() *Config {
	fc := loadFileConfig(os.Getenv("STARTPAGE_CONFIG_FILE"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STARTPAGE_LISTEN_PORT", orStr(fc.ListenPort, ":8080")),
		ShutdownTimeout: mustDuration("STARTPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STARTPAGE_LOG_LEVEL", orStr(fc.LogLevel, "info")),
		PrettyLog: mustBool("STARTPAGE_PRETTY_LOG", orBool(fc.PrettyLog, true)),

		// Link storage
		RCFile:             getenv("STARTPAGE_RC_FILE", orStr(fc.RCFile, "links.rc")),
		DataDir:            getenv("STARTPAGE_DATA_DIR", orStr(fc.DataDir, ".")),
		ReloadInterval:     mustDuration("STARTPAGE_RELOAD_INTERVAL", orDuration(fc.ReloadInterval, time.Hour)),
		WatchRCFile:        mustBool("STARTPAGE_WATCH_RC_FILE", orBool(fc.WatchRCFile, true)),
		KeepSpecialFolders: mustBool("STARTPAGE_KEEP_SPECIAL_FOLDERS", orBool(fc.KeepSpecialFolders, false)),
		MaxImportBytes:     getenvInt64("STARTPAGE_MAX_IMPORT_BYTES", 10<<20),

		// Backups
		BackupRetention:     mustDuration("STARTPAGE_BACKUP_RETENTION", 7*24*time.Hour),
		BackupSweepInterval: mustDuration("STARTPAGE_BACKUP_SWEEP_INTERVAL", 24*time.Hour),

		// HTTP surface
		AllowedOrigins:  splitAndTrim(getenv("STARTPAGE_ALLOWED_ORIGINS", orStr(fc.AllowedOrigins, ""))),
		RateLimitBurst:  getenvInt("STARTPAGE_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("STARTPAGE_RATE_LIMIT_PER_MIN", 120),
		TrustProxy:      mustBool("STARTPAGE_TRUST_PROXY", orBool(fc.TrustProxy, false)),

		// Redis settings (all optional)
		RedisAddr:           getenv("STARTPAGE_REDIS_ADDR", orStr(fc.Redis.Addr, "")),
		RedisUser:           getenv("STARTPAGE_REDIS_USERNAME", orStr(fc.Redis.User, "default")),
		RedisPassword:       getenv("STARTPAGE_REDIS_PASSWORD", orStr(fc.Redis.Password, "")),
		RedisDB:             getenvInt("STARTPAGE_REDIS_DB", orInt(fc.Redis.DB, 0)),
		RedisDT:             mustDuration("STARTPAGE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("STARTPAGE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("STARTPAGE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("STARTPAGE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("STARTPAGE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("STARTPAGE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("STARTPAGE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("STARTPAGE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("STARTPAGE_REDIS_WARN_THRESHOLD", 3),
	}

	return cfg
}

// loadFileConfig parses the optional YAML config file. A missing or
// broken file is fatal only when explicitly configured.
func loadFileConfig(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("FATAL: cannot read config file %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		panic(fmt.Sprintf("FATAL: cannot parse config file %s: %v", path, err))
	}
	return fc
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func orStr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func orBool(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func orInt(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func orDuration(v *string, def time.Duration) time.Duration {
	if v == nil {
		return def
	}
	if d, err := time.ParseDuration(*v); err == nil {
		return d
	}
	return def
}
