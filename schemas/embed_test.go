package schemas

import (
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Paired(t *testing.T) {
	names, err := fs.Glob(Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		_, err := fs.Stat(Migrations, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestMigrations_QuestionKeywordsUnbounded(t *testing.T) {
	names, err := fs.Glob(Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	sort.Strings(names)

	keywordsColumn := regexp.MustCompile(`(?i)COLUMN keywords (\w+)`)
	var columnType string
	for _, name := range names {
		content, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		if m := keywordsColumn.FindSubmatch(content); m != nil {
			columnType = strings.ToUpper(string(m[1]))
		}
	}
	assert.Equal(t, "TEXT", columnType)
}
