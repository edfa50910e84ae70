package presets

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed presets.csv
var builtinCSV []byte

// Builtin returns the presets compiled into the binary.
func Builtin() []Preset {
	ps, err := parseCSV(bytes.NewReader(builtinCSV), "presets.csv")
	if err != nil {
		panic(err)
	}
	return ps
}

// Load reads presets from path, or returns the built-in set when path is
// empty.
func Load(path string) ([]Preset, error) {
	if path == "" {
		return Builtin(), nil
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return parseCSV(fp, path)
}

func parseCSV(r io.Reader, name string) ([]Preset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", name)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, required := range []string{"name", "width", "height"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv %s: missing column %q", name, required)
		}
	}

	get := func(row []string, col string) string {
		if idx, ok := cols[col]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Preset{}
	for i, row := range rows[1:] {
		p := Preset{
			Name:        get(row, "name"),
			Description: get(row, "description"),
		}
		if p.Name == "" {
			continue
		}
		if p.Width, err = strconv.Atoi(get(row, "width")); err != nil || p.Width <= 0 {
			return nil, fmt.Errorf("csv %s line %d: invalid width %q", name, i+2, get(row, "width"))
		}
		if p.Height, err = strconv.Atoi(get(row, "height")); err != nil || p.Height <= 0 {
			return nil, fmt.Errorf("csv %s line %d: invalid height %q", name, i+2, get(row, "height"))
		}
		d := strings.ToLower(get(row, "default"))
		p.Default = d == "true" || d == "1" || d == "yes"
		out = append(out, p)
	}
	return out, nil
}
