package position

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"main/internal/schema"
)

// Snapshot captures every book-level position at a point in time.
type Snapshot struct {
	Timestamp int64           `json:"timestamp"`
	Positions []SnapshotEntry `json:"positions"`
}

// SnapshotEntry is one product/book quantity entry.
type SnapshotEntry struct {
	ProductID schema.ProductID `json:"productId"`
	Book      string           `json:"book"`
	Quantity  int64            `json:"quantity"`
}

// Snapshot builds a snapshot of the current positions, ordered by product
// then book.
func (s *Service) Snapshot() Snapshot {
	entries := make([]SnapshotEntry, 0, len(s.positions))
	for id, pos := range s.positions {
		for book, qty := range pos.Books {
			entries = append(entries, SnapshotEntry{ProductID: id, Book: book, Quantity: qty})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ProductID != entries[j].ProductID {
			return entries[i].ProductID < entries[j].ProductID
		}
		return entries[i].Book < entries[j].Book
	})
	return Snapshot{
		Timestamp: time.Now().UTC().UnixNano(),
		Positions: entries,
	}
}

// WriteSnapshot writes a snapshot to disk as JSON.
func WriteSnapshot(path string, snapshot Snapshot) error {
	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a snapshot from disk.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
