package configmanager

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// Validate checks a loaded configuration, including its log level.
func Validate(config *v1alpha1.Config) error {
	err := config.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	_, err = logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
