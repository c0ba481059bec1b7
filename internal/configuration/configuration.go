// Package configuration implements reading of the (optional) Unix-type
// configuration file, with its values mapped into a [Config].
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/desertwitch/treewalk/internal/walker"
)

const (
	// DefaultConfigFile is the configuration file that is read, if it exists,
	// when no other configuration file is given.
	DefaultConfigFile = "/etc/treewalk.env"

	// DefaultSelftestDepth is the depth of the nested directory chain that is
	// created by the path evaluation self-test.
	DefaultSelftestDepth = 5

	KeyBatchSize     = "TREEWALK_BATCH_SIZE"
	KeyHumanSizes    = "TREEWALK_HUMAN_SIZES"
	KeyLogLevel      = "TREEWALK_LOG_LEVEL"
	KeySelftestDepth = "TREEWALK_SELFTEST_DEPTH"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Config is the principal structure holding the application configuration.
type Config struct {
	BatchSize     int
	HumanSizes    bool
	LogLevel      slog.Level
	SelftestDepth int
}

// NewConfig returns a pointer to a new [Config] with all defaults set.
func NewConfig() *Config {
	return &Config{
		BatchSize:     walker.DefaultBatchSize,
		LogLevel:      slog.LevelInfo,
		SelftestDepth: DefaultSelftestDepth,
	}
}

// Handler is the principal implementation of the configuration handler.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads generic Unix-type configuration files into a map.
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

// Load reads the configuration file into a [Config]. Values missing from the
// file, or invalid ones, keep their defaults. A missing file is only an error
// if it was explicitly given (required).
func (c *Handler) Load(filename string, required bool) (*Config, error) {
	config := NewConfig()

	envMap, err := c.ReadGeneric(filename)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}

		return nil, fmt.Errorf("(config) failed to read %s: %w", filename, err)
	}

	if v := c.MapKeyToInt(envMap, KeyBatchSize); v > 0 {
		config.BatchSize = v
	}

	if v := c.MapKeyToInt(envMap, KeySelftestDepth); v > 0 {
		config.SelftestDepth = v
	}

	config.HumanSizes = c.MapKeyToBool(envMap, KeyHumanSizes)

	if v := c.MapKeyToString(envMap, KeyLogLevel); v != "" {
		if err := config.LogLevel.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("Invalid log level in configuration (ignored)",
				"key", KeyLogLevel,
				"value", v,
				"err", err,
			)

			config.LogLevel = slog.LevelInfo
		}
	}

	return config, nil
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

func (c *Handler) MapKeyToBool(envMap map[string]string, key string) bool {
	value := strings.TrimSpace(c.MapKeyToString(envMap, key))
	if value == "" {
		return false
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return strings.EqualFold(value, "yes")
	}

	return boolValue
}
