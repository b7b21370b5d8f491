package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"name": "John Doe",
		"age": 30,
		"address": {
			"street": "123 Main St",
			"zip": 12345
		},
		"phones": [
			{"type": "home", "number": 5551234},
			{"type": "work", "number": 5555678}
		],
		"active": true,
		"manager": null
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0644))

	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	expected := `{"name":"John Doe","age":30,"address":{"street":"123 Main St","zip":12345},` +
		`"phones":[{"type":"home","number":5551234},{"type":"work","number":5555678}],` +
		`"active":true,"manager":null}` + "\n"
	assert.Equal(t, expected, string(written))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	stdout, stderr, err := runCLI(t, ` [ 1 , "two" , { "three" : 3 } ] `)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[1,\"two\",{\"three\":3}]\n", stdout)
}

func TestCLI_PrettyMode(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":[1,2],"b":{}}`, "-m", "pretty", "--indent", "    ")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "{\n    \"a\": [\n        1,\n        2\n    ],\n    \"b\": {}\n}\n", stdout)
}

func TestCLI_SumMode(t *testing.T) {
	doc := `{"a":1,"b":{"c":"red","d":2},"e":1}`

	stdout, stderr, err := runCLI(t, doc, "-m", "sum")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "4\n", stdout)

	stdout, stderr, err = runCLI(t, doc, "-m", "sum", "-s", "red")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "2\n", stdout)

	stdout, stderr, err = runCLI(t, doc, "-m", "sum", "-k", "^c$")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "2\n", stdout)
}

func TestCLI_StatsMode(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":[1,2,3],"a":"dup"}`, "-m", "stats")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Contains(t, stdout, "objects: 1")
	assert.Contains(t, stdout, "arrays: 1")
	assert.Contains(t, stdout, "duplicate_keys: 1")
	assert.Contains(t, stdout, "sum: 6")
}

func TestCLI_ConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "jsontree.yml")
	cfg := "output:\n  mode: sum\nskip:\n  values: [\"red\"]\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0644))

	stdout, stderr, err := runCLI(t, `[5,{"x":"red","y":100}]`, "-c", cfgFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "5\n", stdout)
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"lex failure", `{"name": nope}`, "JSON syntax error"},
		{"missing colon", `{"name" 30}`, "JSON structure error"},
		{"scalar root", `30`, "must be an object or array"},
		{"trailing value", `{} {}`, "end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, tt.input)
			assert.Error(t, err, "CLI should fail with invalid JSON")
			assert.Contains(t, stderr, tt.message)
		})
	}
}

func TestCLI_DepthLimit(t *testing.T) {
	_, stderr, err := runCLI(t, `[[[[1]]]]`, "--max-depth", "3")
	assert.Error(t, err)
	assert.Contains(t, stderr, "nesting deeper than 3 levels")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := runCLI(t, "")
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr, "empty input")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "jsontree version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-m, --mode")
	assert.Contains(t, helpOutput, "-k, --skip-key")
	assert.Contains(t, helpOutput, "--max-depth")
}
