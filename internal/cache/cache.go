// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores resolved paper records on disk, one JSON file per
// query, with a metadata index carrying timestamps for expiry. Entries
// are purged lazily: an expired entry is deleted when it is next read.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

const metadataFile = "metadata.json"

// Key derives the cache file name for a query. Case and surrounding
// whitespace differences share one entry.
func Key(query string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return hex.EncodeToString(sum[:])
}

// entryMeta records when an entry was written and for which query.
type entryMeta struct {
	Query    string    `json:"query"`
	CachedAt time.Time `json:"cached_at"`
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries   int
	TotalSize int64
	Dir       string
}

// Store is a file-backed query cache. Not safe for concurrent use by
// multiple processes.
type Store struct {
	dir    string
	expiry time.Duration
	meta   map[string]entryMeta

	// now is replaceable in tests.
	now func() time.Time
}

// Open creates the cache directory if needed and loads the metadata
// index. A corrupt index is discarded, not fatal: the worst case is
// entries without timestamps, which read as fresh.
func Open(dir string, expiryDays int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	s := &Store{
		dir:    dir,
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
		meta:   make(map[string]entryMeta),
		now:    time.Now,
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err == nil {
		if err := json.Unmarshal(data, &s.meta); err != nil {
			s.meta = make(map[string]entryMeta)
		}
	}
	return s, nil
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the cached record for query, or (nil, false) on a miss.
// An expired entry is deleted and reported as a miss.
func (s *Store) Get(query string) (*types.PaperRef, bool) {
	key := Key(query)
	path := s.entryPath(key)

	if _, err := os.Stat(path); err != nil {
		return nil, false
	}

	if m, ok := s.meta[key]; ok && !m.CachedAt.IsZero() && s.expiry > 0 {
		if s.now().After(m.CachedAt.Add(s.expiry)) {
			s.Delete(query)
			return nil, false
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var ref types.PaperRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, false
	}
	return &ref, true
}

// Put writes the record and stamps it in the metadata index.
func (s *Store) Put(query string, ref *types.PaperRef) error {
	key := Key(query)

	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := os.WriteFile(s.entryPath(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	s.meta[key] = entryMeta{Query: query, CachedAt: s.now()}
	return s.saveMeta()
}

// Delete removes the entry and its metadata. Missing entries are not an
// error.
func (s *Store) Delete(query string) error {
	key := Key(query)
	if err := os.Remove(s.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache entry: %w", err)
	}
	if _, ok := s.meta[key]; ok {
		delete(s.meta, key)
		return s.saveMeta()
	}
	return nil
}

// Clear removes every entry and resets the index.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading cache dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == metadataFile || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("removing cache entry: %w", err)
		}
	}
	s.meta = make(map[string]entryMeta)
	return s.saveMeta()
}

// Stats walks the cache directory and reports entry count and total
// size, metadata file excluded.
func (s *Store) Stats() (Stats, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Stats{}, fmt.Errorf("reading cache dir: %w", err)
	}
	stats := Stats{Dir: s.dir}
	for _, e := range entries {
		if e.IsDir() || e.Name() == metadataFile || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalSize += info.Size()
	}
	return stats, nil
}

func (s *Store) saveMeta() error {
	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, metadataFile), data, 0o644); err != nil {
		return fmt.Errorf("writing cache metadata: %w", err)
	}
	return nil
}
