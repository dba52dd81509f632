// Package testutil provides shared test fixtures: a fake mdbtools
// installation backed by shell scripts, so delegate-driven code can be
// exercised without a real Access file.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// FakeDB describes the tables served by a fake mdbtools installation.
// Keys are table names, values are the CSV that mdb-export prints for them
// (header line first). Table names must not contain shell metacharacters.
type FakeDB map[string]string

// Drill returns a fake drill-hole database with the standard table layout.
func Drill() FakeDB {
	return FakeDB{
		"collar": "hole_id,block,easting,northing,elevation\n" +
			"BH-001,NORTH,5000.5,81000.25,455.0\n" +
			"BH-002,NORTH,5100.0,81050.75,460.5\n" +
			"BH-003,SOUTH,4890.25,80800.0,448.0\n",
		"survey": "hole_id,depth,azimuth,dip\n" +
			"BH-001,0,90.5,-60\n" +
			"BH-001,50,91.0,-61\n" +
			"BH-002,0,270.0,-55\n",
		"litho": "hole_id,depth_from,depth_to,lith_code\n" +
			"BH-001,0,4.5,OVB\n" +
			"BH-001,4.5,120,GRN\n" +
			"BH-002,0,2,OVB\n" +
			"BH-002,2,88,BAS\n",
		"alteration": "hole_id,depth_from,depth_to,alt_code_rev\n" +
			"BH-001,4.5,30,SIL\n",
	}
}

// Install writes fake mdb-tables and mdb-export scripts to a temp dir and
// returns the dir plus the path of a dummy .mdb file to open. The table
// listing includes an MSys entry so callers can verify system-table
// filtering.
func Install(t *testing.T, db FakeDB) (binDir, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "test.mdb")
	if err := os.WriteFile(dbPath, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write fake db: %v", err)
	}

	names := make([]string, 0, len(db))
	for name := range db {
		names = append(names, name)
	}
	sort.Strings(names)

	var tablesScript strings.Builder
	tablesScript.WriteString("#!/bin/sh\n")
	tablesScript.WriteString("if [ \"$1\" = \"--version\" ]; then echo \"mdbtools 1.0.0 (fake)\"; exit 0; fi\n")
	tablesScript.WriteString("cat <<'TABLES'\n")
	tablesScript.WriteString("MSysAccessObjects\n")
	for _, name := range names {
		tablesScript.WriteString(name + "\n")
	}
	tablesScript.WriteString("TABLES\n")
	writeScript(t, dir, "mdb-tables", tablesScript.String())

	var exportScript strings.Builder
	exportScript.WriteString("#!/bin/sh\n")
	exportScript.WriteString("case \"$2\" in\n")
	for _, name := range names {
		fmt.Fprintf(&exportScript, "%q)\ncat <<'CSVEOF'\n%sCSVEOF\n;;\n", name, db[name])
	}
	exportScript.WriteString("*) echo \"Error: Table $2 not found\" >&2; exit 1;;\n")
	exportScript.WriteString("esac\n")
	writeScript(t, dir, "mdb-export", exportScript.String())

	return dir, dbPath
}

// InstallBroken writes a fake installation whose mdb-export always fails,
// for exercising delegate-failure paths.
func InstallBroken(t *testing.T) (binDir, dbPath string) {
	t.Helper()

	binDir, dbPath = Install(t, FakeDB{"collar": "hole_id\n"})
	writeScript(t, binDir, "mdb-export", "#!/bin/sh\necho \"Error: file is corrupt\" >&2\nexit 1\n")
	return binDir, dbPath
}

// InstallSlow writes a fake installation whose mdb-export sleeps longer
// than any sensible test timeout, for exercising deadline handling.
func InstallSlow(t *testing.T) (binDir, dbPath string) {
	t.Helper()

	binDir, dbPath = Install(t, FakeDB{"collar": "hole_id\n"})
	writeScript(t, binDir, "mdb-export", "#!/bin/sh\nsleep 5\n")
	return binDir, dbPath
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
