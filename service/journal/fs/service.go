package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/bistro/maitre/internal/clock"
	"github.com/bistro/maitre/internal/idgen"
	"github.com/bistro/maitre/model"
	"github.com/bistro/maitre/service/journal"
)

// Config holds configuration for the filesystem journal.
type Config struct {
	// BaseURL is the directory (any afs scheme: file, mem, s3, ...) the
	// journal writes entries under.
	BaseURL string
}

// DefaultConfig returns a default journal configuration.
func DefaultConfig() Config {
	return Config{BaseURL: "/tmp/maitre/journal"}
}

// Service persists one JSON document per state transition under BaseURL.
// Filenames embed a zero-padded sequence number so a plain listing replays
// the log in decision order.
type Service struct {
	fs     afs.Service
	config Config
	mu     sync.Mutex
	seq    int
}

// New creates a filesystem journal and ensures the base directory exists.
func New(fs afs.Service, config Config) (*Service, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	ctx := context.Background()
	exists, _ := fs.Exists(ctx, config.BaseURL)
	if !exists {
		if err := fs.Create(ctx, config.BaseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", config.BaseURL, err)
		}
	}
	return &Service{fs: fs, config: config}, nil
}

// Record writes the snapshot as the next journal document.
func (s *Service) Record(ctx context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	s.mu.Lock()
	s.seq++
	entry := &journal.Entry{
		ID:        idgen.New(),
		Seq:       s.seq,
		CreatedAt: clock.Now(),
		State:     snapshot,
	}
	s.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	dest := url.Join(s.config.BaseURL, fmt.Sprintf("%06d-%s.json", entry.Seq, entry.ID))
	if err := s.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewBuffer(data)); err != nil {
		return fmt.Errorf("failed to write journal entry %s: %w", dest, err)
	}
	return nil
}

// ensure Service implements the journal.Service interface
var _ journal.Service = (*Service)(nil)
