package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janisto/connect-provisioner/cmd/connectctl/handlers"
	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

func useMockService(t *testing.T) *connect.MockConnectService {
	t.Helper()
	client := connect.NewMockConnectService(
		[]connect.ProfileSummary{{ID: "sp-1", Name: "Agent"}},
		[]connect.ProfileSummary{{ID: "rp-1", Name: "Basic"}},
	)
	orig := handlers.NewService
	handlers.NewService = func(_ context.Context, opts ...provisioning.Option) (handlers.Service, error) {
		return provisioning.NewService(client, "inst-1", opts...), nil
	}
	t.Cleanup(func() { handlers.NewService = orig })
	return client
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "connectctl", cmd.Use)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"create", "profiles", "version"} {
		assert.True(t, names[want], "expected subcommand %s", want)
	}
}

func TestCreate_Flags(t *testing.T) {
	cmd := Create()

	file := cmd.Flags().Lookup("file")
	require.NotNil(t, file)
	assert.Equal(t, "f", file.Shorthand)

	unique := cmd.Flags().Lookup("unique-username")
	require.NotNil(t, unique)
	assert.Equal(t, "false", unique.DefValue)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "json", output.DefValue)
}

func TestCreate_RequiresFile(t *testing.T) {
	useMockService(t)

	_, err := run(t, "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestCreate_FromYAMLFile(t *testing.T) {
	client := useMockService(t)
	path := filepath.Join(t.TempDir(), "event.yaml")
	event := `Username: jdoe
Password: Passw0rd!
PhoneConfig:
  PhoneType: SOFT_PHONE
SecurityProfileIds:
  - Agent
RoutingProfileId: Basic
`
	require.NoError(t, os.WriteFile(path, []byte(event), 0o600))

	out, err := run(t, "create", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"UserId": "user-1"`)
	require.Len(t, client.Created, 1)
	assert.Equal(t, "jdoe", client.Created[0].Username)
	assert.Equal(t, []string{"sp-1"}, client.Created[0].SecurityProfileIDs)
}

func TestCreate_UniqueUsername(t *testing.T) {
	client := useMockService(t)
	path := filepath.Join(t.TempDir(), "event.json")
	event := `{"Username":"ignored","Password":"x","PhoneConfig":{"PhoneType":"SOFT_PHONE"},` +
		`"SecurityProfileIds":["Agent"],"RoutingProfileId":"Basic"}`
	require.NoError(t, os.WriteFile(path, []byte(event), 0o600))

	_, err := run(t, "create", "-f", path, "--unique-username", "-o", "yaml")
	require.NoError(t, err)
	require.Len(t, client.Created, 1)
	assert.True(t, strings.HasPrefix(client.Created[0].Username, "Tester-"), "got %s", client.Created[0].Username)
}

func TestCreate_ErrorModes(t *testing.T) {
	useMockService(t)
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, err := run(t, "create", "-f", path, "--error-mode", "strict")
	require.Error(t, err)
	assert.Equal(t, "Missing required field: Username", err.Error())

	out, err := run(t, "create", "-f", path, "--error-mode", "permissive")
	require.NoError(t, err)
	assert.Contains(t, out, `"error": "Missing required field: Username"`)

	_, err = run(t, "create", "-f", path, "--error-mode", "lenient")
	require.Error(t, err)
}

func TestProfiles_Table(t *testing.T) {
	useMockService(t)

	out, err := run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "security  Agent  sp-1")
	assert.Contains(t, out, "routing   Basic  rp-1")
}

func TestProfiles_JSON(t *testing.T) {
	useMockService(t)

	out, err := run(t, "profiles", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"securityProfiles": [`)
	assert.Contains(t, out, `"Agent"`)
}

func TestVersion_Output(t *testing.T) {
	origVersion, origCommit := version, commit
	t.Cleanup(func() { version, commit = origVersion, origCommit })

	SetVersionInfo("1.2.3", "abc123")
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "connectctl 1.2.3 (commit abc123)\n", out)
}
