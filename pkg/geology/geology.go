// Package geology is a convenience layer over pkg/access for drill-hole
// databases: typed accessors for the collar, survey, lithology and
// alteration tables. Everything here delegates to the generic table query
// with preset table names and predicates.
package geology

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"geoaccess/internal/export"
	"geoaccess/pkg/access"
)

// DB wraps an open Access database with drill-hole table accessors.
type DB struct {
	db      *access.Database
	profile Profile
}

// Wrap builds the convenience layer around an already-open database using
// the default profile.
func Wrap(db *access.Database) *DB {
	return WrapWithProfile(db, DefaultProfile())
}

// WrapWithProfile builds the convenience layer with custom table and column
// names.
func WrapWithProfile(db *access.Database, profile Profile) *DB {
	return &DB{db: db, profile: profile}
}

// Database returns the underlying generic handle.
func (g *DB) Database() *access.Database { return g.db }

// Collar returns the collar table accessor.
func (g *DB) Collar() Collar { return Collar{g} }

// Survey returns the survey table accessor.
func (g *DB) Survey() Survey { return Survey{g} }

// Lithology returns the lithology table accessor.
func (g *DB) Lithology() Lithology { return Lithology{g} }

// Alteration returns the alteration table accessor.
func (g *DB) Alteration() Alteration { return Alteration{g} }

// Collar accesses drill-hole collar locations.
type Collar struct{ g *DB }

// AllHoles returns every collar row.
func (c Collar) AllHoles(ctx context.Context) (*access.ResultSet, error) {
	return c.g.db.Query(ctx, c.g.profile.Tables.Collar)
}

// HoleByID returns the collar row for one hole, or nil when the hole is
// unknown.
func (c Collar) HoleByID(ctx context.Context, holeID string) (map[string]any, error) {
	rs, err := c.g.db.Query(ctx, c.g.profile.Tables.Collar,
		access.WithWhere(eq(c.g.profile.Columns.HoleID, holeID)),
		access.WithLimit(1))
	if err != nil {
		return nil, err
	}
	if rs.Len() == 0 {
		return nil, nil
	}
	return rs.RowMap(0), nil
}

// HolesInBlock returns collar rows for all holes in a mining block.
func (c Collar) HolesInBlock(ctx context.Context, block string) (*access.ResultSet, error) {
	return c.g.db.Query(ctx, c.g.profile.Tables.Collar,
		access.WithWhere(eq(c.g.profile.Columns.Block, block)))
}

// Survey accesses downhole survey measurements.
type Survey struct{ g *DB }

// ForHole returns the survey rows for one hole.
func (s Survey) ForHole(ctx context.Context, holeID string) (*access.ResultSet, error) {
	return s.g.db.Query(ctx, s.g.profile.Tables.Survey,
		access.WithWhere(eq(s.g.profile.Columns.HoleID, holeID)))
}

// All returns every survey row.
func (s Survey) All(ctx context.Context) (*access.ResultSet, error) {
	return s.g.db.Query(ctx, s.g.profile.Tables.Survey)
}

// Lithology accesses logged lithology intervals.
type Lithology struct{ g *DB }

// ForHole returns the lithology intervals for one hole.
func (l Lithology) ForHole(ctx context.Context, holeID string) (*access.ResultSet, error) {
	return l.g.db.Query(ctx, l.g.profile.Tables.Lithology,
		access.WithWhere(eq(l.g.profile.Columns.HoleID, holeID)))
}

// ByCode returns every interval logged with one rock code.
func (l Lithology) ByCode(ctx context.Context, lithCode string) (*access.ResultSet, error) {
	return l.g.db.Query(ctx, l.g.profile.Tables.Lithology,
		access.WithWhere(eq(l.g.profile.Columns.LithCode, lithCode)))
}

// All returns every lithology interval.
func (l Lithology) All(ctx context.Context) (*access.ResultSet, error) {
	return l.g.db.Query(ctx, l.g.profile.Tables.Lithology)
}

// Alteration accesses logged alteration intervals.
type Alteration struct{ g *DB }

// ForHole returns the alteration intervals for one hole.
func (a Alteration) ForHole(ctx context.Context, holeID string) (*access.ResultSet, error) {
	return a.g.db.Query(ctx, a.g.profile.Tables.Alteration,
		access.WithWhere(eq(a.g.profile.Columns.HoleID, holeID)))
}

// ByCode returns every interval logged with one alteration code.
func (a Alteration) ByCode(ctx context.Context, altCode string) (*access.ResultSet, error) {
	return a.g.db.Query(ctx, a.g.profile.Tables.Alteration,
		access.WithWhere(eq(a.g.profile.Columns.AltCode, altCode)))
}

// All returns every alteration interval.
func (a Alteration) All(ctx context.Context) (*access.ResultSet, error) {
	return a.g.db.Query(ctx, a.g.profile.Tables.Alteration)
}

// HoleData aggregates everything recorded against one drill hole.
type HoleData struct {
	HoleID    string
	Collar    map[string]any // nil when the hole has no collar row
	Survey    *access.ResultSet
	Lithology *access.ResultSet
}

// HoleData fetches the collar row, survey rows and lithology intervals for
// one hole.
func (g *DB) HoleData(ctx context.Context, holeID string) (*HoleData, error) {
	collar, err := g.Collar().HoleByID(ctx, holeID)
	if err != nil {
		return nil, err
	}
	survey, err := g.Survey().ForHole(ctx, holeID)
	if err != nil {
		return nil, err
	}
	litho, err := g.Lithology().ForHole(ctx, holeID)
	if err != nil {
		return nil, err
	}
	return &HoleData{HoleID: holeID, Collar: collar, Survey: survey, Lithology: litho}, nil
}

// ExportHole writes the hole's collar, survey and lithology data as CSV
// files under dir (created if missing). The collar file is only written
// when the hole has a collar row.
func (g *DB) ExportHole(ctx context.Context, holeID, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	where := access.WithWhere(eq(g.profile.Columns.HoleID, holeID))

	collar, err := g.db.Query(ctx, g.profile.Tables.Collar, where, access.WithLimit(1))
	if err != nil {
		return err
	}
	if collar.Len() > 0 {
		if err := export.WriteCSV(filepath.Join(dir, holeID+"_collar.csv"), collar); err != nil {
			return err
		}
	}

	if err := g.db.ExportCSV(ctx, g.profile.Tables.Survey,
		filepath.Join(dir, holeID+"_survey.csv"), where); err != nil {
		return err
	}
	return g.db.ExportCSV(ctx, g.profile.Tables.Lithology,
		filepath.Join(dir, holeID+"_litho.csv"), where)
}
