package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var ErrRunNotFound = errors.New("run not found")

var (
	bucketRuns  = []byte("runs")      // sortable key -> manifest json
	bucketIndex = []byte("runs_by_id") // run id -> sortable key
)

// fixed width so byte order equals chronological order
const keyTimeLayout = "20060102T150405.000000000Z"

// Manifest records everything needed to regenerate a run byte for byte.
type Manifest struct {
	ID        string        `json:"id"`
	Seed      int64         `json:"seed"`
	Customers int           `json:"customers"`
	Orders    int           `json:"orders"`
	OutputDir string        `json:"output_dir"`
	Sinks     []string      `json:"sinks,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

func NewManifest(seed int64, customers, orders int, outputDir string, startedAt time.Time) Manifest {
	return Manifest{
		ID:        uuid.NewString(),
		Seed:      seed,
		Customers: customers,
		Orders:    orders,
		OutputDir: outputDir,
		StartedAt: startedAt.UTC(),
	}
}

func (m Manifest) key() []byte {
	return []byte(m.StartedAt.UTC().Format(keyTimeLayout) + "/" + m.ID)
}

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create run log dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketRuns, bucketIndex} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Put(m Manifest) error {
	if m.ID == "" {
		return errors.New("manifest id is required")
	}
	value, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bucketIndex)
		runs := tx.Bucket(bucketRuns)
		// re-putting a run replaces its previous entry
		if old := idx.Get([]byte(m.ID)); old != nil {
			if err := runs.Delete(old); err != nil {
				return err
			}
		}
		k := m.key()
		if err := runs.Put(k, value); err != nil {
			return err
		}
		return idx.Put([]byte(m.ID), k)
	})
}

func (s *Store) Get(id string) (Manifest, error) {
	var m Manifest
	err := s.db.View(func(tx *bolt.Tx) error {
		k := tx.Bucket(bucketIndex).Get([]byte(id))
		if k == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		v := tx.Bucket(bucketRuns).Get(k)
		if v == nil {
			return fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

// List returns every recorded run, oldest first.
func (s *Store) List() ([]Manifest, error) {
	var out []Manifest
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, v []byte) error {
			var m Manifest
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			out = append(out, m)
			return nil
		})
	})
	return out, err
}

// FileLister opens the run log read-only for each List call, so a long-running reader
// never holds the file lock a generate run needs.
type FileLister struct {
	Path string
}

func (l FileLister) List() ([]Manifest, error) {
	db, err := bolt.Open(l.Path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if errors.Is(err, os.ErrNotExist) {
		// no run recorded yet
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	defer db.Close()
	s := &Store{db: db}
	var missing bool
	_ = db.View(func(tx *bolt.Tx) error {
		missing = tx.Bucket(bucketRuns) == nil
		return nil
	})
	if missing {
		return nil, nil
	}
	return s.List()
}
