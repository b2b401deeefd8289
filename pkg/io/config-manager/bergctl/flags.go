package configmanager

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/spf13/pflag"
)

// ConfigFlagName selects an explicit config file.
const ConfigFlagName = "config"

// AddFlags registers the configuration flags on flags. Their defaults match
// v1alpha1.NewConfig so that help output shows the effective defaults.
func AddFlags(flags *pflag.FlagSet) {
	defaults := v1alpha1.NewConfig()
	output := defaults.Output

	flags.String(KeyURL, defaults.URL, "Bergenholm API base URL")
	flags.Bool(KeyCheck, defaults.Check, "Report what would change without writing")
	flags.Var(&output, KeyOutput, fmt.Sprintf("Output format %v", output.ValidValues()))
	flags.Duration(KeyTimeout, defaults.Timeout, "Per-request timeout (0 disables)")
	flags.Int(KeyReadRetries, defaults.ReadRetries, "Retries for failed reads on transient errors")
	flags.String(KeyLogLevel, defaults.LogLevel, "Log level (panic, fatal, error, warning, info, debug, trace)")
	flags.String(ConfigFlagName, "", "Path to a config file (default ./bergctl.yaml or "+UserConfigDir+"/bergctl.yaml)")
}

// BindFlags binds the configuration flags of flags to the manager's viper
// instance. Flags missing from flags are skipped.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for _, key := range []string{KeyURL, KeyCheck, KeyOutput, KeyTimeout, KeyReadRetries, KeyLogLevel} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	if flag := flags.Lookup(ConfigFlagName); flag != nil && flag.Changed {
		m.ConfigFile = flag.Value.String()
	}

	return nil
}
