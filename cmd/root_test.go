package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/sarifclean/internal/normalizer"
	"github.com/scan-io-git/sarifclean/pkg/shared/errors"
)

const vendorDoc = `{
  "version": "2.1.0-rtm.5",
  "sarifNodeKind": 0,
  "runs": [
    {
      "tool": {"driver": {"name": "DevOps Shield", "rules": [{"id": "DS001", "tags": ["x"]}]}},
      "results": [
        {
          "ruleId": "DS001",
          "level": 2,
          "kind": 99,
          "message": {"text": "a < b"},
          "properties": {"sarifNodeKind": "Finding"},
          "locations": [{"physicalLocation": {"artifactLocation": {"uri": ""}}}]
        }
      ]
    }
  ]
}`

const wantCompact = `{"$schema":"` + normalizer.DefaultSchemaURI + `","version":"2.1.0","runs":[` +
	`{"tool":{"driver":{"name":"DevOps Shield","rules":[{"id":"DS001"}]}},` +
	`"results":[{"ruleId":"DS001","level":"warning","message":{"text":"a < b"},"properties":{},"locations":[]}]}]}` + "\n"

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SARIFCLEAN_CONFIG", "")
	t.Setenv("SARIFCLEAN_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scan.sarif")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, vendorDoc)
	output := filepath.Join(dir, "clean.sarif")

	stdout, err := executeRoot(t, "--indent", "0", input, output)
	require.NoError(t, err)
	assert.Equal(t, "Done! 1 results, 1 rules\n", stdout)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, wantCompact, string(got))

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, vendorDoc, string(original), "input must be left untouched")
}

func TestRootOverwritesInputInPlace(t *testing.T) {
	input := writeInput(t, t.TempDir(), vendorDoc)

	_, err := executeRoot(t, input)
	require.NoError(t, err)

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Contains(t, string(got), "{\n  \"$schema\": ")
	assert.NotContains(t, string(got), "sarifNodeKind")

	// a second run leaves the file byte-identical
	_, err = executeRoot(t, input)
	require.NoError(t, err)
	again, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, string(got), string(again))
}

func TestRootFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, `{"runs":[{"tool":{"driver":{"name":"t"}},"vendorId":"v","results":[]}]}`)
	cfgPath := filepath.Join(dir, "sarifclean.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  indent: 4\nnormalizer:\n  schema_uri: https://example.com/config.json\n"), 0644))
	output := filepath.Join(dir, "clean.sarif")

	_, err := executeRoot(t, "-c", cfgPath, "--strip", "vendorId", "--schema-uri", "https://example.com/flag.json", "--indent", "0", input, output)
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, `{"$schema":"https://example.com/flag.json","version":"2.1.0","runs":[{"tool":{"driver":{"name":"t"}},"results":[]}]}`+"\n", string(got))
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     func(input, dir string) []string
		wantCode int
	}{
		{
			name:     "top-level array",
			content:  `[{"runs":[]}]`,
			args:     func(input, dir string) []string { return []string{input, filepath.Join(dir, "out.sarif")} },
			wantCode: errors.ExitCodeInputShape,
		},
		{
			name:     "missing runs",
			content:  `{"version":"2.1.0"}`,
			args:     func(input, dir string) []string { return []string{input, filepath.Join(dir, "out.sarif")} },
			wantCode: errors.ExitCodeInputShape,
		},
		{
			name:     "malformed json",
			content:  `{"runs": [`,
			args:     func(input, dir string) []string { return []string{input, filepath.Join(dir, "out.sarif")} },
			wantCode: errors.ExitCodeIO,
		},
		{
			name:     "missing input",
			content:  `{}`,
			args:     func(input, dir string) []string { return []string{filepath.Join(dir, "missing.sarif"), filepath.Join(dir, "out.sarif")} },
			wantCode: errors.ExitCodeIO,
		},
		{
			name:     "invalid indent",
			content:  `{"runs":[]}`,
			args:     func(input, dir string) []string { return []string{"--indent", "9", input, filepath.Join(dir, "out.sarif")} },
			wantCode: errors.ExitCodeInvalidArgs,
		},
		{
			name:     "too many arguments",
			content:  `{"runs":[]}`,
			args:     func(input, dir string) []string { return []string{input, filepath.Join(dir, "out.sarif"), "extra"} },
			wantCode: errors.ExitCodeInvalidArgs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeInput(t, dir, tt.content)

			_, err := executeRoot(t, tt.args(input, dir)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.ExitCodeFor(err))

			_, statErr := os.Stat(filepath.Join(dir, "out.sarif"))
			assert.True(t, os.IsNotExist(statErr), "no output file may be written on failure")

			original, readErr := os.ReadFile(input)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(original))
		})
	}
}

func TestRootRequiresInput(t *testing.T) {
	_, err := executeRoot(t)
	require.Error(t, err)
	assert.Equal(t, errors.ExitCodeInvalidArgs, errors.ExitCodeFor(err))
}

func TestVersionCommand(t *testing.T) {
	stdout, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Core Version: vunknown")
	assert.Contains(t, stdout, "SARIF Version: 2.1.0")
}
