package protocol

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/types"
)

const testCatalog = `{"svc1":[{"tags":["mysql"],"credentials":{"username":"u","password":"p","hostname":"h","name":"d"}}],` +
	`"svc2":[{"tags":["kafka"],"credentials":{"hostname":"kh"}}]}`

func TestPassthroughArgs(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected []string
		invalid  bool
	}{
		{name: "no arguments", args: []string{}, expected: []string{}},
		{name: "after dash", args: []string{"--", "--log_level=debug"}, expected: []string{"--log_level=debug"}},
		{name: "positional before dash", args: []string{"launch"}, invalid: true},
		{name: "positional and dash", args: []string{"launch", "--", "--log_level=debug"}, invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				got []string
				err error
			)
			cmd := &cobra.Command{
				Use:  "launcher",
				Args: cobra.ArbitraryArgs,
				RunE: func(cmd *cobra.Command, args []string) error {
					got, err = passthroughArgs(cmd, args)
					return nil
				},
			}
			cmd.SetArgs(tc.args)
			require.NoError(t, cmd.Execute())

			if tc.invalid {
				assert.ErrorContains(t, err, "is an invalid command")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// restoreEnv keeps launches in this process from leaking JAVA_HOME and PATH changes
func restoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JAVA_HOME", os.Getenv("JAVA_HOME"))
	t.Setenv("PATH", os.Getenv("PATH"))
}

func TestRoot_MissingBindings(t *testing.T) {
	restoreEnv(t)
	t.Setenv("JAVA_HOME", "/usr/lib/jvm/default")
	t.Setenv("VCAP_SERVICES", "")
	require.NoError(t, os.Unsetenv("VCAP_SERVICES"))

	root := CreateRootCommand()
	root.SetArgs([]string{})
	err := root.Execute()

	assert.ErrorIs(t, err, types.ErrMissingBindings)
	assert.Equal(t, "/usr/lib/jvm/default", os.Getenv("JAVA_HOME"), "environment must not change before validation")
}

func TestRoot_NoKafkaStopsBeforeLaunch(t *testing.T) {
	restoreEnv(t)
	t.Setenv("VCAP_SERVICES", `{"svc1":[{"tags":["mysql"],"credentials":{"username":"u","password":"p","hostname":"h","name":"d"}}]}`)

	root := CreateRootCommand()
	root.SetArgs([]string{})
	err := root.Execute()

	var configErr *types.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.ErrorIs(t, err, types.ErrNoKafka)
}

func TestRoot_MissingBinary(t *testing.T) {
	restoreEnv(t)
	javaHome := t.TempDir()
	t.Setenv("VCAP_SERVICES", testCatalog)
	t.Setenv("MAXWELL_LAUNCHER_JAVA_HOME", javaHome)
	t.Setenv("MAXWELL_LAUNCHER_BINARY", filepath.Join(t.TempDir(), "bin", "maxwell"))

	root := CreateRootCommand()
	root.SetArgs([]string{})
	err := root.Execute()

	var launchErr *types.LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, javaHome, os.Getenv("JAVA_HOME"))
	assert.Contains(t, os.Getenv("PATH"), filepath.Join(javaHome, "bin"))
}

func TestRoot_InvalidCommand(t *testing.T) {
	restoreEnv(t)
	t.Setenv("VCAP_SERVICES", testCatalog)

	root := CreateRootCommand()
	root.SetArgs([]string{"lauch"})
	err := root.Execute()

	assert.ErrorContains(t, err, "'lauch' is an invalid command")
}

// launchArgsMessage returns the LAUNCH_ARGS message written to the log
func launchArgsMessage(t *testing.T, logged string) types.Message {
	t.Helper()
	for _, line := range strings.Split(logged, "\n") {
		if !strings.Contains(line, string(types.LaunchArgsMessage)) {
			continue
		}
		start, end := strings.Index(line, "{"), strings.LastIndex(line, "}")
		require.True(t, start >= 0 && end > start, "no message in %q", line)

		var message types.Message
		require.NoError(t, json.Unmarshal([]byte(line[start:end+1]), &message))
		return message
	}
	t.Fatalf("no %s message in log output:\n%s", types.LaunchArgsMessage, logged)
	return types.Message{}
}

func TestArgs(t *testing.T) {
	restoreEnv(t)
	t.Setenv("VCAP_SERVICES", testCatalog)
	t.Cleanup(func() {
		showSecrets = false
		logger.SetOutput(os.Stderr)
	})

	testCases := []struct {
		name     string
		args     []string
		password string
	}{
		{name: "password masked", args: []string{"args", "--show-secrets=false", "--", "--log_level=debug"}, password: "--password=******"},
		{name: "show secrets", args: []string{"args", "--show-secrets", "--", "--log_level=debug"}, password: "--password=p"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.SetOutput(&buf)

			root := CreateRootCommand()
			root.SetArgs(tc.args)
			require.NoError(t, root.Execute())

			message := launchArgsMessage(t, buf.String())
			assert.Equal(t, types.LaunchArgsMessage, message.Type)
			assert.Equal(t, []string{
				"--output_ddl=true",
				"--user=u",
				tc.password,
				"--host=h",
				"--schema_database=d",
				"--producer=kafka",
				"--kafka.bootstrap.servers=kh",
				"--kafka_topic=maxwell",
				"--log_level=debug",
			}, message.LaunchArgs)
		})
	}
}

func TestCheck_ReportsEveryFailure(t *testing.T) {
	restoreEnv(t)
	t.Setenv("VCAP_SERVICES", `{"db":[{"tags":["mysql"],"credentials":{"username":"u","password":"p","hostname":"127.0.0.1","name":"d","port":1}}],`+
		`"bus":[{"tags":["kafka"],"credentials":{"hostname":"127.0.0.1:9"}}]}`)
	t.Setenv("MAXWELL_LAUNCHER_JAVA_HOME", t.TempDir())
	t.Setenv("MAXWELL_LAUNCHER_BINARY", filepath.Join(t.TempDir(), "maxwell"))
	t.Setenv("MAXWELL_LAUNCHER_CHECK_RETRIES", "1")

	root := CreateRootCommand()
	root.SetArgs([]string{"check", "--timeout", "20s"})
	err := root.Execute()

	require.Error(t, err)
	for _, prefix := range []string{"maxwell:", "java:", "mysql:", "kafka:"} {
		assert.ErrorContains(t, err, prefix)
	}
}
