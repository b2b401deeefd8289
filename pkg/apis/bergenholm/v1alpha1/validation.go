package v1alpha1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when the Bergenholm URL is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid Bergenholm url")

// ErrInvalidReadRetries is returned when a negative read retry count is configured.
var ErrInvalidReadRetries = errors.New("read retries must not be negative")

// ErrInvalidTimeout is returned when a negative timeout is configured.
var ErrInvalidTimeout = errors.New("timeout must not be negative")

// Validate checks the group input. Defaults must have been applied.
func (in *GroupInput) Validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}

	err := ValidateIdentifier(in.Name)
	if err != nil {
		return err
	}

	if !in.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGroupState, in.State)
	}

	return validateOptionalURL(in.URL)
}

// Validate checks the host input. Defaults must have been applied.
func (in *HostInput) Validate() error {
	if in.UUID == "" {
		return ErrUUIDRequired
	}

	err := ValidateIdentifier(in.UUID)
	if err != nil {
		return err
	}

	if !in.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidHostState, in.State)
	}

	for _, params := range []Params{in.Params, in.Set} {
		if params == nil {
			continue
		}

		_, err = params.Groups()
		if err != nil {
			return err
		}
	}

	return validateOptionalURL(in.URL)
}

// ValidateIdentifier checks that id can be used as a single REST path segment.
func ValidateIdentifier(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: %q is blank", ErrInvalidIdentifier, id)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	case strings.Contains(id, "/"):
		return fmt.Errorf("%w: %q contains '/'", ErrInvalidIdentifier, id)
	default:
		return nil
	}
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %q must use http or https", ErrInvalidURL, raw)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}

	return nil
}

// Validate checks the manifest header, every item, and that no identifier is
// declared twice for the same Bergenholm URL. Defaults are applied to the items first.
func (m *Manifest) Validate() error {
	if m.APIVersion != "" && m.APIVersion != APIVersion {
		return fmt.Errorf("%w: unsupported apiVersion %q", ErrInvalidManifest, m.APIVersion)
	}

	if m.Kind != "" && m.Kind != KindManifest {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidManifest, m.Kind)
	}

	err := validateOptionalURL(m.URL)
	if err != nil {
		return err
	}

	seenGroups := make(map[manifestKey]struct{}, len(m.Groups))

	for i := range m.Groups {
		m.Groups[i].ApplyDefaults()

		err = m.Groups[i].Validate()
		if err != nil {
			return fmt.Errorf("groups[%d]: %w", i, err)
		}

		key := m.key(m.Groups[i].URL, m.Groups[i].Name)
		if _, dup := seenGroups[key]; dup {
			return fmt.Errorf("%w: group %q", ErrDuplicateIdentifier, m.Groups[i].Name)
		}

		seenGroups[key] = struct{}{}
	}

	seenHosts := make(map[manifestKey]struct{}, len(m.Hosts))

	for i := range m.Hosts {
		m.Hosts[i].ApplyDefaults()

		err = m.Hosts[i].Validate()
		if err != nil {
			return fmt.Errorf("hosts[%d]: %w", i, err)
		}

		key := m.key(m.Hosts[i].URL, m.Hosts[i].UUID)
		if _, dup := seenHosts[key]; dup {
			return fmt.Errorf("%w: host %q", ErrDuplicateIdentifier, m.Hosts[i].UUID)
		}

		seenHosts[key] = struct{}{}
	}

	return nil
}

// manifestKey identifies one resource on one Bergenholm service.
type manifestKey struct {
	url string
	id  string
}

// key resolves an item URL against the manifest URL. Items that resolve to
// no URL share the configured default.
func (m *Manifest) key(itemURL, id string) manifestKey {
	if itemURL == "" {
		itemURL = m.URL
	}

	return manifestKey{url: strings.TrimRight(itemURL, "/"), id: id}
}

// Validate checks the configuration values that do not depend on other packages.
func (c *Config) Validate() error {
	err := ValidateURL(c.URL)
	if err != nil {
		return err
	}

	if !c.Output.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output)
	}

	if c.ReadRetries < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReadRetries, c.ReadRetries)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}

	return nil
}

func validateOptionalURL(raw string) error {
	if raw == "" {
		return nil
	}

	return ValidateURL(raw)
}
