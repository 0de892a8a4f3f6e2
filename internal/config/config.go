package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	OCR     OCRConfig
	LLM     LLMConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// MaxLifetime recycles pooled connections so long-lived processes survive
	// database failovers and idle-connection reaping by proxies.
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig holds document storage settings. Provider is "local" or "s3".
type StorageConfig struct {
	Provider      string `mapstructure:"provider"`
	LocalDir      string `mapstructure:"local_dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
}

// OCRConfig holds text extraction settings. PDFTextThreshold is the minimum
// number of embedded-text characters for a PDF to count as digital;
// PDFRenderDPI controls scanned-page rasterization (144 = 2x the PDF's
// native 72 DPI).
type OCRConfig struct {
	Language         string `mapstructure:"language"`
	PDFTextThreshold int    `mapstructure:"pdf_text_threshold"`
	PDFRenderDPI     int    `mapstructure:"pdf_render_dpi"`
	TessdataPrefix   string `mapstructure:"tessdata_prefix"`
}

// LLMConfig holds text-generation provider settings. The temperature and
// token budget of each pipeline task are policy constants inherited from the
// system's tuning, kept configurable rather than buried as literals.
type LLMConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`

	CleanTemperature    float64 `mapstructure:"clean_temperature"`
	CleanMaxTokens      int     `mapstructure:"clean_max_tokens"`
	ExtractTemperature  float64 `mapstructure:"extract_temperature"`
	ExtractMaxTokens    int     `mapstructure:"extract_max_tokens"`
	SummaryTemperature  float64 `mapstructure:"summary_temperature"`
	SummaryMaxTokens    int     `mapstructure:"summary_max_tokens"`
	FindingsTemperature float64 `mapstructure:"findings_temperature"`
	FindingsMaxTokens   int     `mapstructure:"findings_max_tokens"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the MEDISCRIBE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDISCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "mediscribe")
	v.SetDefault("db.password", "mediscribe_secret")
	v.SetDefault("db.name", "mediscribe_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_lifetime", "30m")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.max_file_size_mb", 10)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "mediscribe-uploads")
	v.SetDefault("storage.endpoint", "")

	// OCR defaults
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.pdf_text_threshold", 100)
	v.SetDefault("ocr.pdf_render_dpi", 144)
	v.SetDefault("ocr.tessdata_prefix", "")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.clean_temperature", 0.3)
	v.SetDefault("llm.clean_max_tokens", 2048)
	v.SetDefault("llm.extract_temperature", 0.2)
	v.SetDefault("llm.extract_max_tokens", 1024)
	v.SetDefault("llm.summary_temperature", 0.3)
	v.SetDefault("llm.summary_max_tokens", 1024)
	v.SetDefault("llm.findings_temperature", 0.3)
	v.SetDefault("llm.findings_max_tokens", 256)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "MEDISCRIBE_SERVER_PORT",
		"server.read_timeout":      "MEDISCRIBE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "MEDISCRIBE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "MEDISCRIBE_SERVER_ENVIRONMENT",
		"db.host":                  "MEDISCRIBE_DB_HOST",
		"db.port":                  "MEDISCRIBE_DB_PORT",
		"db.user":                  "MEDISCRIBE_DB_USER",
		"db.password":              "MEDISCRIBE_DB_PASSWORD",
		"db.name":                  "MEDISCRIBE_DB_NAME",
		"db.sslmode":               "MEDISCRIBE_DB_SSLMODE",
		"db.max_open":              "MEDISCRIBE_DB_MAX_OPEN",
		"db.max_idle":              "MEDISCRIBE_DB_MAX_IDLE",
		"db.max_lifetime":          "MEDISCRIBE_DB_MAX_LIFETIME",
		"storage.provider":         "MEDISCRIBE_STORAGE_PROVIDER",
		"storage.local_dir":        "MEDISCRIBE_STORAGE_LOCAL_DIR",
		"storage.max_file_size_mb": "MEDISCRIBE_STORAGE_MAX_FILE_SIZE_MB",
		"storage.region":           "MEDISCRIBE_STORAGE_REGION",
		"storage.bucket":           "MEDISCRIBE_STORAGE_BUCKET",
		"storage.endpoint":         "MEDISCRIBE_STORAGE_ENDPOINT",
		"storage.access_key":       "MEDISCRIBE_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "MEDISCRIBE_STORAGE_SECRET_KEY",
		"ocr.language":             "MEDISCRIBE_OCR_LANGUAGE",
		"ocr.pdf_text_threshold":   "MEDISCRIBE_OCR_PDF_TEXT_THRESHOLD",
		"ocr.pdf_render_dpi":       "MEDISCRIBE_OCR_PDF_RENDER_DPI",
		"ocr.tessdata_prefix":      "MEDISCRIBE_OCR_TESSDATA_PREFIX",
		"llm.api_key":              "MEDISCRIBE_LLM_API_KEY",
		"llm.model":                "MEDISCRIBE_LLM_MODEL",
		"llm.endpoint":             "MEDISCRIBE_LLM_ENDPOINT",
		"llm.timeout_secs":         "MEDISCRIBE_LLM_TIMEOUT_SECS",
		"llm.clean_temperature":    "MEDISCRIBE_LLM_CLEAN_TEMPERATURE",
		"llm.clean_max_tokens":     "MEDISCRIBE_LLM_CLEAN_MAX_TOKENS",
		"llm.extract_temperature":  "MEDISCRIBE_LLM_EXTRACT_TEMPERATURE",
		"llm.extract_max_tokens":   "MEDISCRIBE_LLM_EXTRACT_MAX_TOKENS",
		"llm.summary_temperature":  "MEDISCRIBE_LLM_SUMMARY_TEMPERATURE",
		"llm.summary_max_tokens":   "MEDISCRIBE_LLM_SUMMARY_MAX_TOKENS",
		"llm.findings_temperature": "MEDISCRIBE_LLM_FINDINGS_TEMPERATURE",
		"llm.findings_max_tokens":  "MEDISCRIBE_LLM_FINDINGS_MAX_TOKENS",
		"cors.allowed_origins":     "MEDISCRIBE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDISCRIBE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDISCRIBE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:     v.GetInt("db.max_open"),
		MaxIdle:     v.GetInt("db.max_idle"),
		MaxLifetime: v.GetDuration("db.max_lifetime"),
	}
	cfg.Storage = StorageConfig{
		Provider:      v.GetString("storage.provider"),
		LocalDir:      v.GetString("storage.local_dir"),
		MaxFileSizeMB: v.GetInt64("storage.max_file_size_mb"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
	}
	cfg.OCR = OCRConfig{
		Language:         v.GetString("ocr.language"),
		PDFTextThreshold: v.GetInt("ocr.pdf_text_threshold"),
		PDFRenderDPI:     v.GetInt("ocr.pdf_render_dpi"),
		TessdataPrefix:   v.GetString("ocr.tessdata_prefix"),
	}
	cfg.LLM = LLMConfig{
		APIKey:              v.GetString("llm.api_key"),
		Model:               v.GetString("llm.model"),
		Endpoint:            v.GetString("llm.endpoint"),
		TimeoutSecs:         v.GetInt("llm.timeout_secs"),
		CleanTemperature:    v.GetFloat64("llm.clean_temperature"),
		CleanMaxTokens:      v.GetInt("llm.clean_max_tokens"),
		ExtractTemperature:  v.GetFloat64("llm.extract_temperature"),
		ExtractMaxTokens:    v.GetInt("llm.extract_max_tokens"),
		SummaryTemperature:  v.GetFloat64("llm.summary_temperature"),
		SummaryMaxTokens:    v.GetInt("llm.summary_max_tokens"),
		FindingsTemperature: v.GetFloat64("llm.findings_temperature"),
		FindingsMaxTokens:   v.GetInt("llm.findings_max_tokens"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
