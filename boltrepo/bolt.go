// Package boltrepo persists the repository tree in a Bolt database.
// The tree is loaded into the in-memory model at open; after every
// mutation the repository hands over a snapshot which is written back
// as one json payload.
package boltrepo

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/boltdb/bolt"

	"github.com/fbrnila/go-dms-dav/memrepo"
)

var (
	bucketRepo  = []byte("repository")
	keySnapshot = []byte("snapshot")
)

// Store couples the in-memory repository with its Bolt backing file.
type Store struct {
	*memrepo.Repo
	db *bolt.DB
}

// Open loads (or initializes) the repository persisted at path.
// Content bytes stay on the filesystem under contentDir.
func Open(path, contentDir string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	repo := memrepo.New(contentDir)
	s := &Store{Repo: repo, db: db}

	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}

	repo.OnMutate(func(snap *memrepo.Snapshot) {
		if err := s.persist(snap); err != nil {
			// persistence is retried on the next mutation; the
			// in-memory state stays authoritative meanwhile
			log.Println("boltrepo: persist failed:", err)
		}
	})
	return s, nil
}

// Close flushes the final snapshot and closes the database.
func (s *Store) Close() error {
	if err := s.persist(s.Repo.Export()); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func (s *Store) load() error {
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRepo)
		if b == nil {
			return nil
		}
		if v := b.Get(keySnapshot); v != nil {
			payload = append(payload, v...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}

	var snap memrepo.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("decode repository snapshot: %w", err)
	}
	return s.Repo.Import(&snap)
}

func (s *Store) persist(snap *memrepo.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketRepo)
		if err != nil {
			return err
		}
		return b.Put(keySnapshot, payload)
	})
}
