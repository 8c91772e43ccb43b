package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"carvaluator/internal/models"
)

// MarkupEntry is one cached search page
type MarkupEntry struct {
	Key       string             `json:"key"`
	Query     models.SearchQuery `json:"query"`
	URL       string             `json:"url,omitempty"`
	Markup    string             `json:"markup"`
	Timestamp time.Time          `json:"timestamp"`
}

// EntryStatus describes a cache file without its markup
type EntryStatus struct {
	Key     string        `json:"key"`
	Query   string        `json:"query"`
	Age     time.Duration `json:"age"`
	Expired bool          `json:"expired"`
	Size    int           `json:"size"`
}

const (
	DefaultDir    = "data"
	CacheExpiry   = 24 * time.Hour
	filePrefix    = "markup_"
	fileExtension = ".json"
)

// MarkupCache stores scraped search pages on disk, one JSON file per query
type MarkupCache struct {
	dir    string
	expiry time.Duration
	mu     sync.Mutex
	now    func() time.Time
}

// New creates a cache rooted at dir. Zero values fall back to the defaults.
func New(dir string, expiry time.Duration) *MarkupCache {
	if dir == "" {
		dir = DefaultDir
	}
	if expiry <= 0 {
		expiry = CacheExpiry
	}
	return &MarkupCache{dir: dir, expiry: expiry, now: time.Now}
}

// Key hashes the normalized query so equivalent searches share an entry
func Key(q models.SearchQuery) string {
	normalized := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(q.City)),
		strings.ToLower(strings.TrimSpace(q.Make)),
		strings.ToLower(strings.TrimSpace(q.Model)),
		strings.ToLower(strings.TrimSpace(q.Transmission)),
		fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d",
			q.MinPrice, q.MaxPrice, q.MinMileage, q.MaxMileage, q.MinYear, q.MaxYear, q.DaysListed),
	}, "|")
	sum := blake2b.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:16])
}

func (c *MarkupCache) path(key string) string {
	return filepath.Join(c.dir, filePrefix+key+fileExtension)
}

// Load returns cached markup for q when present and not expired
func (c *MarkupCache) Load(q models.SearchQuery) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(q)
	entry, err := c.read(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("📁 No cached markup found, will scrape fresh data")
		} else {
			fmt.Printf("❌ Error reading cache file: %v\n", err)
		}
		return "", false
	}

	age := c.now().Sub(entry.Timestamp)
	if age > c.expiry {
		fmt.Printf("⏰ Cache expired (%v old), will refresh\n", age.Round(time.Minute))
		return "", false
	}

	fmt.Printf("✅ Loaded %d bytes of markup from cache (updated %v ago)\n", len(entry.Markup), age.Round(time.Minute))
	return entry.Markup, true
}

// Save writes markup for q, replacing any previous entry
func (c *MarkupCache) Save(q models.SearchQuery, url, markup string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	key := Key(q)
	entry := MarkupEntry{
		Key:       key,
		Query:     q,
		URL:       url,
		Markup:    markup,
		Timestamp: c.now(),
	}

	file, err := os.Create(c.path(key))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	fmt.Printf("💾 Cached %d bytes of markup to %s\n", len(markup), c.path(key))
	return nil
}

// Status lists every cache entry with its age
func (c *MarkupCache) Status() ([]EntryStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths, err := c.files()
	if err != nil {
		return nil, err
	}

	statuses := make([]EntryStatus, 0, len(paths))
	for _, p := range paths {
		entry, err := c.read(p)
		if err != nil {
			continue // corrupted entries are ignored
		}
		age := c.now().Sub(entry.Timestamp)
		statuses = append(statuses, EntryStatus{
			Key:     entry.Key,
			Query:   strings.TrimSpace(entry.Query.Make + " " + entry.Query.Model + " @ " + entry.Query.City),
			Age:     age,
			Expired: age > c.expiry,
			Size:    len(entry.Markup),
		})
	}
	return statuses, nil
}

// Clear removes all cache entries and returns how many were deleted
func (c *MarkupCache) Clear() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths, err := c.files()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", p, err)
		}
		removed++
	}
	fmt.Printf("🗑️  Cleared %d cached pages\n", removed)
	return removed, nil
}

func (c *MarkupCache) files() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(c.dir, filePrefix+"*"+fileExtension))
	if err != nil {
		return nil, fmt.Errorf("failed to list cache files: %w", err)
	}
	return paths, nil
}

func (c *MarkupCache) read(path string) (*MarkupEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entry MarkupEntry
	if err := json.NewDecoder(file).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
