package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/pkg/errors"
)

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "cinemood", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"classify", "recommend", "detect", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	pf := NewRootCommand().PersistentFlags()
	for _, name := range []string{"config", "log-level", "output", "verbose", "timeout"} {
		assert.NotNil(t, pf.Lookup(name), name)
	}
	assert.Equal(t, "text", pf.Lookup("output").DefValue)
	assert.Equal(t, "o", pf.Lookup("output").Shorthand)
}

func TestRoot_RejectsUnknownOutputFormat(t *testing.T) {
	_, _, err := execute(t, "--output", "yaml", "version")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRoot_RejectsUnknownLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "version")
	require.Error(t, err)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", "/nonexistent/cinemood.yaml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

func TestGetCLIContext_Missing(t *testing.T) {
	_, err := GetCLIContext(&cobra.Command{})
	assert.Error(t, err)
}

func TestParseScores(t *testing.T) {
	scores, err := ParseScores([]string{"happy=0.8", " sad = 0.1", "happy=0.9"})
	require.NoError(t, err)
	assert.Equal(t, emotion.Scores{"happy": 0.9, "sad": 0.1}, scores)

	for _, bad := range []string{"happy", "=0.5", "happy=lots"} {
		_, err := ParseScores([]string{bad})
		assert.True(t, errors.IsCode(err, errors.CodeInvalidParam), bad)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cinemood dev")

	out, _, err = execute(t, "-o", "json", "version")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestPrintError(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	PrintError(cmd, nil)
	assert.Empty(t, buf.String())

	PrintError(cmd, errors.InvalidParam("bad"))
	assert.Equal(t, "Error: [COMMON_002] bad\n", buf.String())
}

//Personal.AI order the ending
