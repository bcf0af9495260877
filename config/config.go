package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "10MB"
	defaultAPIPrefix          = "/api"
	defaultBcryptCost         = 12
	defaultTokenTTL           = 7 * 24 * time.Hour
	defaultMetricsPath        = "/metrics"
)

// Event providers accepted by Events.Provider. An empty provider disables publishing.
const (
	EventsProviderLocal  = "local"
	EventsProviderGoogle = "google"
)

// Storage drivers accepted by Storage.Driver.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	API APIConfig `json:"api" yaml:"api"`

	CORS CORSConfig `json:"cors" yaml:"cors"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	// Countries configures the world GeoJSON dataset served by the map endpoints
	Countries *CountriesConfig `json:"countries" yaml:"countries"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Events configures where member events are published
	Events *EventsConfig `json:"events" yaml:"events"`
}

// APIConfig defines the public API surface
type APIConfig struct {
	Prefix  string `json:"prefix" yaml:"prefix"`
	Version string `json:"version" yaml:"version"`
}

// CORSConfig defines allowed browser origins
type CORSConfig struct {
	AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
}

// StorageConfig selects the user store backend
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
}

// MongoConfig defines the MongoDB connection used when Storage.Driver is "mongo"
type MongoConfig struct {
	URI            string        `json:"uri" yaml:"uri"`
	Database       string        `json:"database" yaml:"database"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
	Issuer     string        `json:"issuer" yaml:"issuer"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CountriesConfig points at the world countries GeoJSON file
type CountriesConfig struct {
	GeoJSONPath string        `json:"geoJSONPath" yaml:"geoJSONPath"`
	CacheMaxAge time.Duration `json:"cacheMaxAge" yaml:"cacheMaxAge"`
	Watch       bool          `json:"watch" yaml:"watch"`
}

// EventsConfig selects the member event publisher
type EventsConfig struct {
	Provider      string `json:"provider" yaml:"provider"`
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
	ProjectID     string `json:"projectID" yaml:"projectID"`
	TopicID       string `json:"topicID" yaml:"topicID"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: AUTH_TOKENTTL -> auth.tokenTTL (not auth.tokenttl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections and rejects values that would only fail later at runtime.
func (cfg *Config) applyDefaults() error {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if _, err := bytes.Parse(cfg.HTTP.MaxRequestBodySize); err != nil {
		return errors.Wrapf(err, "invalid http.maxRequestBodySize %q", cfg.HTTP.MaxRequestBodySize)
	}

	if cfg.API.Prefix == "" {
		cfg.API.Prefix = defaultAPIPrefix
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverPostgres
	}
	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("storage driver postgres requires a postgres section")
		}
	case StorageDriverMongo:
		if cfg.Mongo == nil || cfg.Mongo.URI == "" {
			return errors.New("storage driver mongo requires mongo.uri")
		}
	default:
		return errors.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = DefaultPasswordStrength()
	}

	if cfg.Metrics != nil && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}

	if cfg.Events != nil {
		switch cfg.Events.Provider {
		case "":
		case EventsProviderLocal:
			if cfg.Events.LocalEndpoint == "" {
				return errors.New("events provider local requires events.localEndpoint")
			}
		case EventsProviderGoogle:
			if cfg.Events.ProjectID == "" || cfg.Events.TopicID == "" {
				return errors.New("events provider google requires events.projectID and events.topicID")
			}
		default:
			return errors.Errorf("unknown events provider: %s", cfg.Events.Provider)
		}
	}

	return nil
}

// DefaultPasswordStrength is the five-requirement policy applied when none is configured.
func DefaultPasswordStrength() *PasswordStrengthConfig {
	return &PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
