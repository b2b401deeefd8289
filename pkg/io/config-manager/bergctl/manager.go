package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/fsutil"
	configmanagerinterface "github.com/devantler-tech/bergctl/pkg/io/config-manager"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ConfigManager implements configuration management for bergctl v1alpha1.Config.
type ConfigManager struct {
	Viper *viper.Viper
	// Config is the loaded configuration; populated with defaults until Load succeeds.
	Config *v1alpha1.Config
	// ConfigFile, when set, is read instead of searching the config paths.
	ConfigFile string
	// Logger receives diagnostics about where configuration came from.
	Logger logrus.FieldLogger

	configLoaded    bool
	configFileFound bool
}

var _ configmanagerinterface.ConfigManager[v1alpha1.Config] = (*ConfigManager)(nil)

// NewConfigManager creates a configuration manager. A nil logger discards diagnostics.
func NewConfigManager(logger logrus.FieldLogger) *ConfigManager {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &ConfigManager{
		Viper:  InitializeViper(),
		Config: v1alpha1.NewConfig(),
		Logger: logger,
	}
}

// Load loads the configuration. Priority: defaults < config file < environment < flags.
// Returns the loaded config, either freshly loaded or previously cached.
func (m *ConfigManager) Load(opts configmanagerinterface.LoadOptions) (*v1alpha1.Config, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig()
		if err != nil {
			return nil, err
		}
	}

	err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		err = Validate(m.Config)
		if err != nil {
			return nil, err
		}
	}

	m.configLoaded = true

	return m.Config, nil
}

// ConfigFileUsed returns the config file that was read, or "" when none was.
func (m *ConfigManager) ConfigFileUsed() string {
	if !m.configFileFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

func (m *ConfigManager) readConfig() error {
	if m.ConfigFile != "" {
		path, err := fsutil.ExpandHomePath(m.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to resolve config file: %w", err)
		}

		m.Viper.SetConfigFile(path)
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if m.ConfigFile != "" || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false
		m.Logger.Debug("no config file found, using defaults")

		return nil
	}

	m.configFileFound = true
	m.Logger.WithField("file", m.Viper.ConfigFileUsed()).Debug("config file loaded")

	return nil
}

func (m *ConfigManager) unmarshal() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			outputFormatHook(),
		)
	}

	err := m.Viper.Unmarshal(m.Config, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return nil
}

// outputFormatHook decodes output formats case-insensitively, like the flag does.
func outputFormatHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[v1alpha1.OutputFormat]() {
			return data, nil
		}

		raw, _ := data.(string)
		format := v1alpha1.OutputFormat(strings.ToLower(strings.TrimSpace(raw)))

		return format, nil
	}
}
