package v1alpha1

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	// APIVersion is the apiVersion accepted in bergctl manifests.
	APIVersion = "bergctl.devantler.tech/v1alpha1"
	// KindManifest is the kind accepted in bergctl manifests.
	KindManifest = "Manifest"
)

// --- Inputs ---

// GroupInput is the structured invocation input of the group reconciler.
// A nil Params means "keep whatever is stored". Set overrides single
// top-level keys of Params, or of the stored mapping when Params is nil.
type GroupInput struct {
	Name   string     `json:"name"`
	Params Params     `json:"params,omitempty"`
	Set    Params     `json:"set,omitempty"`
	State  GroupState `json:"state,omitempty"`
	URL    string     `json:"url,omitempty"`
	Check  bool       `json:"check,omitempty"`
}

// HostInput is the structured invocation input of the host reconciler.
// A nil Params means "keep whatever is stored". Set overrides single
// top-level keys of Params, or of the stored mapping when Params is nil.
type HostInput struct {
	UUID   string    `json:"uuid"`
	Params Params    `json:"params,omitempty"`
	Set    Params    `json:"set,omitempty"`
	State  HostState `json:"state,omitempty"`
	URL    string    `json:"url,omitempty"`
	Check  bool      `json:"check,omitempty"`
}

// ApplyDefaults fills unset fields with their defaults.
func (in *GroupInput) ApplyDefaults() {
	if in.State == "" {
		in.State = GroupStatePresent
	}
}

// ApplyDefaults fills unset fields with their defaults.
func (in *HostInput) ApplyDefaults() {
	if in.State == "" {
		in.State = HostStatePresent
	}
}

// --- Results ---

// GroupResult reports the outcome of a group reconciliation.
type GroupResult struct {
	Changed bool          `json:"changed"`
	Name    string        `json:"name"`
	State   ResourceState `json:"state"`
	Params  Params        `json:"params,omitempty"`
}

// HostResult reports the outcome of a host reconciliation.
// Installed always reflects the resulting state of the host, and Params never
// contains the installed marker.
type HostResult struct {
	Changed   bool          `json:"changed"`
	UUID      string        `json:"uuid"`
	State     ResourceState `json:"state"`
	Installed bool          `json:"installed"`
	Params    Params        `json:"params,omitempty"`
}

// MarshalJSON always emits params for a present group, even an empty mapping.
func (r GroupResult) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(struct {
		Changed bool          `json:"changed"`
		Name    string        `json:"name"`
		State   ResourceState `json:"state"`
		Params  *Params       `json:"params,omitempty"`
	}{r.Changed, r.Name, r.State, effectiveParams(r.State, r.Params)})
}

// MarshalJSON always emits params for a present host, even an empty mapping.
func (r HostResult) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(struct {
		Changed   bool          `json:"changed"`
		UUID      string        `json:"uuid"`
		State     ResourceState `json:"state"`
		Installed bool          `json:"installed"`
		Params    *Params       `json:"params,omitempty"`
	}{r.Changed, r.UUID, r.State, r.Installed, effectiveParams(r.State, r.Params)})
}

func effectiveParams(state ResourceState, params Params) *Params {
	if state == ResourceStatePresent && params == nil {
		params = Params{}
	}

	if state != ResourceStatePresent && len(params) == 0 {
		return nil
	}

	return &params
}

// Failure is the result document written when a reconciliation fails.
type Failure struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

// NewFailure builds the failure document for err.
func NewFailure(err error) Failure {
	return Failure{Failed: true, Msg: err.Error()}
}

// --- Manifest ---

// Manifest declares many groups and hosts to reconcile in one run.
// Items without a URL use the manifest URL, then the configured URL.
type Manifest struct {
	APIVersion string       `json:"apiVersion,omitempty"`
	Kind       string       `json:"kind,omitempty"`
	URL        string       `json:"url,omitempty"`
	Groups     []GroupInput `json:"groups,omitempty"`
	Hosts      []HostInput  `json:"hosts,omitempty"`
}

// --- Configuration ---

// Config holds the settings shared by every bergctl command. It is populated
// from defaults, the config file, BERGCTL_* environment variables and flags.
type Config struct {
	URL         string        `json:"url"                   mapstructure:"url"`
	Check       bool          `json:"check,omitempty"       mapstructure:"check"`
	Output      OutputFormat  `json:"output"                mapstructure:"output"`
	Timeout     time.Duration `json:"timeout,omitempty"     mapstructure:"timeout"`
	ReadRetries int           `json:"readRetries,omitempty" mapstructure:"read-retries"`
	LogLevel    string        `json:"logLevel"              mapstructure:"log-level"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		URL:         DefaultURL,
		Output:      OutputFormatJSON,
		Timeout:     DefaultTimeout,
		ReadRetries: DefaultReadRetries,
		LogLevel:    DefaultLogLevel,
	}
}
