package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEmbeddedDefaults(t *testing.T) {
	// Init is package-global and guarded by sync.Once, so this test relies
	// on WORDS_FILE being unset for the whole test binary.
	require.NoError(t, os.Unsetenv("WORDS_FILE"))
	require.NoError(t, Init())

	assert.GreaterOrEqual(t, Count(), 2)
	assert.Contains(t, List(), "dom")
	for _, w := range List() {
		assert.NotEmpty(t, w)
	}
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n pies \n\nkot\n"), 0o644))

	list, err := readWordFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pies", "kot"}, list)
}

func TestReadWordFileMissing(t *testing.T) {
	_, err := readWordFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestNormalizeLines(t *testing.T) {
	list := normalizeLines("# header\ndom\n  chmura\n\n#skip\nprąd")
	assert.Equal(t, []string{"dom", "chmura", "prąd"}, list)
}
