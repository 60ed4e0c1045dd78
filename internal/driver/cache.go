package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"

	"codex/internal/diag"
	"codex/internal/lint"
	"codex/internal/rules"
	"codex/internal/version"
)

// Current schema version - increment when cachePayload changes.
const cacheSchemaVersion uint16 = 2

// Digest is a SHA-256 value.
type Digest [32]byte

// Cache stores per-file lint results on disk.
// Key = content hash + configuration fingerprint. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema      uint16
	Lines       int
	Diagnostics []diag.Diagnostic
}

// OpenCache opens the cache at dir, or under $XDG_CACHE_HOME/codex when dir is empty.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to locate cache directory: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "codex")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key combines a file content hash with a configuration fingerprint.
func Key(content [32]byte, fingerprint Digest) Digest {
	h := sha256.New()
	h.Write(fingerprint[:])
	h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put stores the result of one file. File names are not stored.
func (c *Cache) Put(key Digest, lines int, diags []diag.Diagnostic) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	stripped := make([]diag.Diagnostic, len(diags))
	copy(stripped, diags)
	for i := range stripped {
		stripped[i].File = ""
	}
	payload := cachePayload{Schema: cacheSchemaVersion, Lines: lines, Diagnostics: stripped}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get loads a cached result and binds its diagnostics to path.
// A payload from another schema counts as a miss.
func (c *Cache) Get(key Digest, path string) (lines int, diags []diag.Diagnostic, ok bool, err error) {
	if c == nil {
		return 0, nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil, false, nil
		}
		return 0, nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return 0, nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return 0, nil, false, nil
	}
	for i := range payload.Diagnostics {
		payload.Diagnostics[i].File = path
	}
	return payload.Lines, payload.Diagnostics, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// fingerprintInput is everything that changes lint output besides file content.
type fingerprintInput struct {
	Schema     uint16
	Version    string
	Modes      any
	LineLength int
	Pairing    any
	Policy     uint8
	NoMarkers  bool
}

// Fingerprint hashes the engine configuration, tables included. The tables
// hold maps of structs, which msgpack writes in map order, so they go in as
// their TOML dump; the TOML encoder sorts keys.
func Fingerprint(opts lint.Options) (Digest, error) {
	h := sha256.New()
	enc := msgpack.NewEncoder(h)
	enc.SetSortMapKeys(true)
	err := enc.Encode(&fingerprintInput{
		Schema:     cacheSchemaVersion,
		Version:    version.Version,
		Modes:      opts.Modes,
		LineLength: opts.LineLength,
		Pairing:    opts.Pairing,
		Policy:     uint8(opts.Policy),
		NoMarkers:  opts.NoMarkers,
	})
	if err != nil {
		return Digest{}, fmt.Errorf("failed to fingerprint configuration: %w", err)
	}
	tables := opts.Tables
	if tables == nil {
		tables = rules.Default()
	}
	if err := tables.Encode(toml.NewEncoder(h)); err != nil {
		return Digest{}, fmt.Errorf("failed to fingerprint tables: %w", err)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}
