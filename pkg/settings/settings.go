package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/datazip-inc/maxwell-launcher/constants"
	"github.com/datazip-inc/maxwell-launcher/types"
)

const EnvPrefix = "MAXWELL_LAUNCHER"

// Settings controls the launcher itself; service credentials come from the bindings
type Settings struct {
	BindingsEnv  string        `mapstructure:"bindings_env"`
	JavaHome     string        `mapstructure:"java_home"`
	Binary       string        `mapstructure:"binary"`
	DefaultTopic string        `mapstructure:"default_topic"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFile      string        `mapstructure:"log_file"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
	CheckRetries int           `mapstructure:"check_retries"`
}

// Load reads settings from environment variables with the MAXWELL_LAUNCHER_ prefix
// (e.g. MAXWELL_LAUNCHER_JAVA_HOME) on top of the defaults.
func Load() (*Settings, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshalling settings: %w", err)
	}

	if s.BindingsEnv == "" {
		return nil, fmt.Errorf("%s_BINDINGS_ENV must not be empty", EnvPrefix)
	}
	if s.Binary == "" {
		return nil, fmt.Errorf("%s_BINARY must not be empty", EnvPrefix)
	}
	if s.CheckRetries <= 0 {
		s.CheckRetries = 1
	}

	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bindings_env", constants.DefaultBindingsEnv)
	v.SetDefault("java_home", constants.DefaultJavaHome)
	v.SetDefault("binary", constants.DefaultBinary)
	v.SetDefault("default_topic", types.DefaultTopic)
	v.SetDefault("log_level", constants.DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("check_timeout", 30*time.Second)
	v.SetDefault("check_retries", 3)
}
