package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FFO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FFO_DB_DSN"
	EnvDBHost = "FFO_DB_HOST"
	EnvDBUser = "FFO_DB_USER"
	EnvDBName = "FFO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Uploads      UploadsConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"FFO_APP_ENV" required:"true"`
	Port         string   `envconfig:"FFO_APP_PORT" default:"3000"`
	LogLevel     string   `envconfig:"FFO_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FFO_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FFO_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FFO_DB_DSN"`
	Driver string `envconfig:"FFO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FFO_DB_HOST"`
	LegacyPort     int    `envconfig:"FFO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FFO_DB_USER"`
	LegacyPassword string `envconfig:"FFO_DB_PASSWORD"`
	LegacyName     string `envconfig:"FFO_DB_NAME"`
	LegacySSLMode  string `envconfig:"FFO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FFO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FFO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FFO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FFO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the catalog runs on the embedded SQLite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"FFO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FFO_REDIS_ADDR"`
	Password     string        `envconfig:"FFO_REDIS_PASSWORD"`
	DB           int           `envconfig:"FFO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FFO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FFO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FFO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FFO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FFO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FFO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FFO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FFO_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"FFO_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FFO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FFO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FFO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FFO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FFO_ARGON_KEY_LEN" default:"32"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"FFO_UPLOADS_DIR" default:"uploads"`
	ServePrefix string `envconfig:"FFO_UPLOADS_SERVE_PREFIX" default:"/uploads"`
	MaxFiles    int    `envconfig:"FFO_UPLOADS_MAX_FILES" default:"5"`
	MaxFileMB   int    `envconfig:"FFO_UPLOADS_MAX_FILE_MB" default:"20"`
}

// MaxFileBytes returns the per-file upload ceiling in bytes.
func (u UploadsConfig) MaxFileBytes() int64 {
	return int64(u.MaxFileMB) * 1024 * 1024
}

// AdminConfig feeds the seed command that provisions the admin account.
// The password is only required when seeding.
type AdminConfig struct {
	Username string `envconfig:"FFO_ADMIN_USERNAME" default:"admin"`
	Password string `envconfig:"FFO_ADMIN_PASSWORD"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FFO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// SQLite needs only a file path; default next to the binary.
	if db.IsSQLite() {
		db.DSN = "catalog.db"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
