// internal/repo/repo.go
//
// Directory-backed snippet repository.
//
// Responsibilities:
//   - Keep a sorted cache of snippet identifiers (<id>.txt files in one directory).
//   - CRUD helpers for the console code page: List, Read, Add, Remove.
//   - Draw a random identifier and load a snippet's normalized lines for a game.
//   - Seed an empty directory with the bundled sample snippets.
//
// Identifiers are file stems; they must be non-empty and may not contain
// path separators. The cache is refreshed after every mutation made
// through the Repo.

package repo

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Lcyanstars/Cordle/assets"
	"github.com/Lcyanstars/Cordle/internal/snippet"
)

const ext = ".txt"

var (
	ErrNotFound  = errors.New("repo: snippet not found")
	ErrEmpty     = errors.New("repo: no snippets available")
	ErrInvalidID = errors.New("repo: invalid snippet id")
	ErrNoContent = errors.New("repo: snippet has no visible characters")
)

// Repo is a directory of snippet files.
type Repo struct {
	root string
	ids  []string
}

// Open returns a Repo rooted at dir, creating the directory if it is missing.
func Open(dir string) (*Repo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	r := &Repo{root: dir}
	if err := r.refresh(); err != nil {
		return nil, err
	}
	log.Debug().Str("dir", dir).Int("snippets", len(r.ids)).Msg("snippet repo opened")
	return r, nil
}

// refresh rebuilds the identifier cache from the directory listing.
func (r *Repo) refresh() error {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return fmt.Errorf("list %s: %w", r.root, err)
	}
	r.ids = lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ext {
			return "", false
		}
		return strings.TrimSuffix(e.Name(), ext), true
	})
	sort.Strings(r.ids)
	return nil
}

// Root returns the backing directory.
func (r *Repo) Root() string { return r.root }

// List returns the cached identifiers in sorted order.
func (r *Repo) List() []string {
	return append([]string(nil), r.ids...)
}

// Len returns the number of cached identifiers.
func (r *Repo) Len() int { return len(r.ids) }

// path validates id and returns its file path.
func (r *Repo) path(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(r.root, id+ext), nil
}

// Read returns the raw file content of a snippet.
func (r *Repo) Read(id string) (string, error) {
	p, err := r.path(id)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(b), nil
}

// Add creates or overwrites a snippet. The content must contain at least
// one non-blank character.
func (r *Repo) Add(id string, lines []string) error {
	p, err := r.path(id)
	if err != nil {
		return err
	}
	if !lo.SomeBy(lines, func(l string) bool { return strings.TrimSpace(l) != "" }) {
		return ErrNoContent
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	log.Info().Str("snippet", strings.TrimSpace(id)).Int("lines", len(lines)).Msg("snippet saved")
	return r.refresh()
}

// Remove deletes a snippet. It reports false when the snippet did not exist.
func (r *Repo) Remove(id string) (bool, error) {
	p, err := r.path(id)
	if err != nil {
		return false, err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", p, err)
	}
	log.Info().Str("snippet", strings.TrimSpace(id)).Msg("snippet removed")
	return true, r.refresh()
}

// Random draws one identifier uniformly from the cache.
// Returns ErrEmpty when the repository holds no snippets.
func (r *Repo) Random(rng *rand.Rand) (string, error) {
	if len(r.ids) == 0 {
		return "", ErrEmpty
	}
	return r.ids[rng.Intn(len(r.ids))], nil
}

// Load reads a snippet and returns its lines normalized for the reveal grid
// (tabs expanded, each line right-padded).
func (r *Repo) Load(id string) ([]string, error) {
	p, err := r.path(id)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, snippet.Normalize(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return out, nil
}

// Seed writes the bundled sample snippets when the repository is empty.
// It returns the number of snippets written.
func (r *Repo) Seed() (int, error) {
	if len(r.ids) > 0 {
		return 0, nil
	}
	samples, err := assets.Samples()
	if err != nil {
		return 0, fmt.Errorf("load samples: %w", err)
	}
	for _, s := range samples {
		if err := r.Add(s.ID, s.Lines); err != nil {
			return 0, err
		}
	}
	return len(samples), nil
}
