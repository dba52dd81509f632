package geology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "collar", p.Tables.Collar)
	assert.Equal(t, "litho", p.Tables.Lithology)
	assert.Equal(t, "hole_id", p.Columns.HoleID)
	assert.Equal(t, "alt_code_rev", p.Columns.AltCode)
}

func TestLoadProfilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tables:
  collar: DH_COLLAR
  lithology: DH_GEOLOGY
columns:
  hole_id: HOLEID
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "DH_COLLAR", p.Tables.Collar)
	assert.Equal(t, "DH_GEOLOGY", p.Tables.Lithology)
	assert.Equal(t, "HOLEID", p.Columns.HoleID)
	// Unset fields keep their defaults.
	assert.Equal(t, "survey", p.Tables.Survey)
	assert.Equal(t, "lith_code", p.Columns.LithCode)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPredicateQuoting(t *testing.T) {
	assert.Equal(t, `hole_id == 'BH-001'`, eq("hole_id", "BH-001"))
	assert.Equal(t, `hole_id == 'O\'Brien'`, eq("hole_id", "O'Brien"))
	assert.Equal(t, `hole_id == 'a\\b'`, eq("hole_id", `a\b`))
}
