package configmanager

import (
	"strings"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables read by bergctl, e.g. BERGCTL_URL.
	EnvPrefix = "BERGCTL"
	// ConfigName is the base name of the config file, e.g. bergctl.yaml.
	ConfigName = "bergctl"
	// UserConfigDir is searched for the config file after the working directory.
	UserConfigDir = "$HOME/.config/bergctl"
)

// Configuration keys. They double as flag names.
const (
	KeyURL         = "url"
	KeyCheck       = "check"
	KeyOutput      = "output"
	KeyTimeout     = "timeout"
	KeyReadRetries = "read-retries"
	KeyLogLevel    = "log-level"
)

// InitializeViper creates a viper instance with bergctl's search paths,
// environment handling and defaults.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(ConfigName)
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath(UserConfigDir)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	defaults := v1alpha1.NewConfig()
	viperInstance.SetDefault(KeyURL, defaults.URL)
	viperInstance.SetDefault(KeyCheck, defaults.Check)
	viperInstance.SetDefault(KeyOutput, string(defaults.Output))
	viperInstance.SetDefault(KeyTimeout, defaults.Timeout)
	viperInstance.SetDefault(KeyReadRetries, defaults.ReadRetries)
	viperInstance.SetDefault(KeyLogLevel, defaults.LogLevel)

	return viperInstance
}
