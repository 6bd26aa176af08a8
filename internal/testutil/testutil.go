// Package testutil provides shared test helpers for config files.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteConfig writes content as config.yml in dir and returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SetupTestConfig creates a minimal valid config file whose exports go under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	exportDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(exportDir, 0755))

	return WriteConfig(t, tmpDir, fmt.Sprintf(`timezone: Asia/Shanghai
database:
  host: 127.0.0.1
  port: 3306
  database: studylog_test
  username: studylog
openai:
  base_url: http://127.0.0.1:1/v1
  model: test-model
keywords:
  delay: 10ms
export:
  directory: %s
`, exportDir))
}
