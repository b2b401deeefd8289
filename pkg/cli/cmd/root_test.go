package cmd_test

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/devantler-tech/bergctl/pkg/cli/cmd"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/devantler-tech/bergctl/pkg/di"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://bergenholm.test/api/1.0"

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

// run executes bergctl with args against transport and returns stdout.
func run(t *testing.T, transport http.RoundTripper, args ...string) (string, error) {
	t.Helper()

	return runWithInput(t, transport, strings.NewReader(""), args...)
}

func runWithInput(t *testing.T, transport http.RoundTripper, in io.Reader, args ...string) (string, error) {
	t.Helper()

	factory := bergenholm.DefaultFactory{HTTPClient: &http.Client{Transport: transport}}
	root := cmd.NewRootCmdWithRuntime(di.NewRuntime(di.ClientFactoryModule(factory)), "test", "test", "test")

	var out, errOut bytes.Buffer

	root.SetIn(in)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--url", testBaseURL}, args...))

	err := cmd.Execute(t.Context(), root)

	return out.String(), err
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestNewRootCmdRegistersGlobalFlags(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")

	for _, name := range []string{"url", "check", "output", "timeout", "read-retries", "log-level", "config"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
}

func TestExecuteShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetArgs([]string{})

	require.NoError(t, cmd.Execute(t.Context(), root))

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsSubcommandHelp(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"group", "host", "apply"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			root := cmd.NewRootCmd("", "", "")
			root.SetOut(&out)
			root.SetArgs([]string{name, "--help"})

			require.NoError(t, cmd.Execute(t.Context(), root))

			snaps.MatchSnapshot(t, out.String())
		})
	}
}

func TestExecuteShowsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute(t.Context(), root))

	assert.Equal(t, "bergctl version 1.2.3 (Built on 2025-08-17 from Git SHA abc123)\n", out.String())
}

func TestExecuteInvalidFlagWritesFailureDocument(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()

	out, err := run(t, transport, "host", "e9fe8fb3", "--state", "broken")

	require.Error(t, err)
	assert.Contains(t, out, `"failed": true`)
	assert.Contains(t, out, "invalid host state")
	assert.Zero(t, transport.GetTotalCallCount())
}
