package geology

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile maps the logical drill-hole tables and key columns onto the names
// actually used in a project's database. The default matches the common
// layout (tables collar/survey/litho/alteration, keyed by hole_id).
type Profile struct {
	Tables struct {
		Collar     string `yaml:"collar"`
		Survey     string `yaml:"survey"`
		Lithology  string `yaml:"lithology"`
		Alteration string `yaml:"alteration"`
	} `yaml:"tables"`
	Columns struct {
		HoleID   string `yaml:"hole_id"`
		Block    string `yaml:"block"`
		LithCode string `yaml:"lith_code"`
		AltCode  string `yaml:"alt_code"`
	} `yaml:"columns"`
}

// DefaultProfile returns the standard table and column names.
func DefaultProfile() Profile {
	var p Profile
	p.Tables.Collar = "collar"
	p.Tables.Survey = "survey"
	p.Tables.Lithology = "litho"
	p.Tables.Alteration = "alteration"
	p.Columns.HoleID = "hole_id"
	p.Columns.Block = "block"
	p.Columns.LithCode = "lith_code"
	p.Columns.AltCode = "alt_code_rev"
	return p
}

// LoadProfile reads a YAML profile. Fields left empty in the file keep
// their defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	fillDefaults(&p)
	return p, nil
}

func fillDefaults(p *Profile) {
	def := DefaultProfile()
	if p.Tables.Collar == "" {
		p.Tables.Collar = def.Tables.Collar
	}
	if p.Tables.Survey == "" {
		p.Tables.Survey = def.Tables.Survey
	}
	if p.Tables.Lithology == "" {
		p.Tables.Lithology = def.Tables.Lithology
	}
	if p.Tables.Alteration == "" {
		p.Tables.Alteration = def.Tables.Alteration
	}
	if p.Columns.HoleID == "" {
		p.Columns.HoleID = def.Columns.HoleID
	}
	if p.Columns.Block == "" {
		p.Columns.Block = def.Columns.Block
	}
	if p.Columns.LithCode == "" {
		p.Columns.LithCode = def.Columns.LithCode
	}
	if p.Columns.AltCode == "" {
		p.Columns.AltCode = def.Columns.AltCode
	}
}

// eq renders an equality predicate for the filter expression syntax, with
// the value quoted safely.
func eq(column, value string) string {
	return fmt.Sprintf("%s == %s", column, quote(value))
}

// quote renders a single-quoted string literal, escaping backslashes and
// embedded quotes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
