package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration for the triage board service.
type Config struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	SchemaMapPath string

	S3Enabled          bool
	S3Bucket           string
	S3Key              string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3FetchTimeout     time.Duration

	DBEnabled        bool
	DBHost           string
	DBPort           int
	DBUser           string
	DBPassword       string
	DBName           string
	DBTable          string
	DBConnTimeout    time.Duration
	DBQueryTimeout   time.Duration

	ViewsSQLitePath string

	// RiskHighBelow/RiskMediumBelow override the category cutoffs for the
	// deployed table version. Negative means "use the scale default"
	// (25/50 on the 0-100 score scale, 0.25/0.50 on probabilities).
	RiskHighBelow   float64
	RiskMediumBelow float64

	// AttributionSelect picks which attribution group the explanation panel
	// shows: "label" follows the predicted outcome class, "threshold" falls
	// back to the medium-risk cutoff when no label column is mapped.
	AttributionSelect string
}

// FromEnv loads configuration from environment variables with sensible defaults.
func FromEnv() Config {
	loadConfigDefaultsFromFile()
	loadSecretsDefaultsFromFile()

	return Config{
		ListenAddr:      getEnv("APP_LISTEN_ADDR", ":8080"),
		ReadTimeout:     time.Duration(getEnvInt("APP_READ_TIMEOUT_SEC", 10)) * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("APP_WRITE_TIMEOUT_SEC", 20)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvInt("APP_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		SchemaMapPath:   getEnv("APP_SCHEMA_MAP_PATH", ""),

		S3Enabled:          getEnvBool("APP_S3_ENABLED", true),
		S3Bucket:           getEnv("APP_S3_BUCKET", "xgb-los-multi"),
		S3Key:              getEnv("APP_S3_KEY", "lz-multiclass/final_pipeline_prediction.csv"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3FetchTimeout:     time.Duration(getEnvInt("APP_S3_FETCH_TIMEOUT_SEC", 30)) * time.Second,

		DBEnabled:      getEnvBool("APP_DB_ENABLED", false),
		DBHost:         getEnv("APP_DB_HOST", "127.0.0.1"),
		DBPort:         getEnvInt("APP_DB_PORT", 3306),
		DBUser:         getEnv("APP_DB_USER", "triage"),
		DBPassword:     getEnv("APP_DB_PASSWORD", ""),
		DBName:         getEnv("APP_DB_NAME", "predictions"),
		DBTable:        getEnv("APP_DB_TABLE", "final_pipeline_prediction"),
		DBConnTimeout:  time.Duration(getEnvInt("APP_DB_CONN_TIMEOUT_SEC", 5)) * time.Second,
		DBQueryTimeout: time.Duration(getEnvInt("APP_DB_QUERY_TIMEOUT_SEC", 10)) * time.Second,

		ViewsSQLitePath: getEnv("APP_VIEWS_SQLITE_PATH", ""),

		RiskHighBelow:   getEnvFloat("APP_RISK_HIGH_BELOW", -1),
		RiskMediumBelow: getEnvFloat("APP_RISK_MEDIUM_BELOW", -1),

		AttributionSelect: getEnv("APP_ATTRIBUTION_SELECT", "label"),
	}
}

func loadConfigDefaultsFromFile() {
	bootstrapCandidates := []string{
		"./triage-board.env",
		"/etc/default/triage-board",
	}

	for _, candidate := range bootstrapCandidates {
		abs := candidate
		if !filepath.IsAbs(candidate) {
			if wd, err := os.Getwd(); err == nil {
				abs = filepath.Join(wd, candidate)
			}
		}
		_ = applyEnvDefaultsFromFile(abs)
	}

	candidates := make([]string, 0, 2)
	if explicit := strings.TrimSpace(os.Getenv("APP_CONFIG_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	candidates = append(candidates, "/etc/triage-board/config.env")

	for _, candidate := range candidates {
		abs := candidate
		if !filepath.IsAbs(candidate) {
			if wd, err := os.Getwd(); err == nil {
				abs = filepath.Join(wd, candidate)
			}
		}

		if err := applyEnvDefaultsFromFile(abs); err == nil {
			return
		}
	}
}

// loadSecretsDefaultsFromFile sources AWS and database credentials. Secrets
// never live in the main config file.
func loadSecretsDefaultsFromFile() {
	candidates := make([]string, 0, 3)
	if explicit := strings.TrimSpace(os.Getenv("APP_SECRETS_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	if credDir := strings.TrimSpace(os.Getenv("CREDENTIALS_DIRECTORY")); credDir != "" {
		credName := strings.TrimSpace(os.Getenv("APP_SECRETS_CREDENTIAL_NAME"))
		if credName == "" {
			credName = "app-secrets"
		}
		candidates = append(candidates, filepath.Join(credDir, credName))
	}
	candidates = append(candidates, "/etc/triage-board/secrets.env")
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if err := applyEnvDefaultsFromFile(candidate); err == nil {
			return
		}
	}
}

func applyEnvDefaultsFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		if key == "" {
			continue
		}

		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}

		if os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}

	return scanner.Err()
}

// MySQLDSN returns a mysql driver DSN with safe defaults for TCP access.
func (c Config) MySQLDSN() string {
	params := url.Values{}
	params.Set("parseTime", "true")
	params.Set("timeout", c.DBConnTimeout.String())
	params.Set("readTimeout", c.DBQueryTimeout.String())
	params.Set("writeTimeout", c.DBQueryTimeout.String())
	params.Set("charset", "utf8mb4")
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, params.Encode())
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}
