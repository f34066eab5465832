// Package presets is a small named table of image geometries (inode count,
// data block count) used by test fixtures and the format command's preset
// argument. It describes geometries only; it does not format images — that
// is done by package mkfs.
package presets

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// Geometry names a disk image size by inode and data block counts, the
// same shape the reference scenarios in the spec use ("32 inodes, 32 data
// blocks").
type Geometry struct {
	Name      string `csv:"name"`
	NumInodes uint   `csv:"num_inodes"`
	NumData   uint   `csv:"num_data"`
}

//go:embed geometries.csv
var rawCSV string

var byName map[string]Geometry

func init() {
	byName = make(map[string]Geometry)

	reader := strings.NewReader(rawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Geometry) error {
		if _, exists := byName[row.Name]; exists {
			return fmt.Errorf("duplicate preset geometry %q", row.Name)
		}
		byName[row.Name] = row
		return nil
	})
	if err != nil && err != io.EOF {
		panic(fmt.Sprintf("presets: failed to parse embedded geometry table: %s", err))
	}
}

// Get returns the named preset geometry.
func Get(name string) (Geometry, error) {
	g, ok := byName[name]
	if !ok {
		return Geometry{}, fmt.Errorf("no preset geometry named %q", name)
	}
	return g, nil
}

// Names returns every preset name, in the order they appear in the table.
func Names() []string {
	names := make([]string, 0, len(byName))
	for _, g := range All() {
		names = append(names, g.Name)
	}
	return names
}

// All returns every preset geometry, in CSV row order.
func All() []Geometry {
	var rows []Geometry
	// Re-parse rather than range over the map so order matches the table;
	// errors here were already surfaced by init.
	_ = gocsv.UnmarshalString(rawCSV, &rows)
	return rows
}
