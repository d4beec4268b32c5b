package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runPTC(t, binaryPath, home, "profile", "init")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPTC(t, binaryPath, home, "profile", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "plank")
	assert.Contains(t, stdout, "squat")

	stdout, stderr, err = runPTC(t, binaryPath, home,
		"simulate",
		"--profile", "plank",
		"--frames", "150",
		"--seed", "1",
		"--no-tui",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Posture Session Summary")
	assert.Contains(t, stdout, "session sim-1")
	assert.Contains(t, stdout, "frames: 150")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ptc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ptc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ptc binary: %s", string(output))
	return binaryPath
}

func runPTC(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
