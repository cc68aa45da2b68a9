package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed snippets/*.txt
var snippetFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

// Sample is one bundled snippet: its identifier and raw lines.
type Sample struct {
	ID    string
	Lines []string
}

// Samples returns the bundled snippets sorted by identifier.
func Samples() ([]Sample, error) {
	entries, err := fs.ReadDir(snippetFS, "snippets")
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".txt" {
			continue
		}
		b, err := snippetFS.ReadFile(path.Join("snippets", e.Name()))
		if err != nil {
			return nil, err
		}
		text := strings.TrimRight(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
		out = append(out, Sample{
			ID:    strings.TrimSuffix(e.Name(), ".txt"),
			Lines: strings.Split(text, "\n"),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Migration is one SQL script, applied in Name order.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the bundled SQL migrations in lexical order.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(sqlFS, "sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			continue
		}
		b, err := sqlFS.ReadFile(path.Join("sql", e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: e.Name(), SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
