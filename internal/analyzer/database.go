package analyzer

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const analysisBucketName = "analyses"

// DB defines the interface for analysis persistence
type DB interface {
	// SaveAnalysis saves an analysis to the database
	SaveAnalysis(analysis *Analysis) error

	// GetAnalysis retrieves an analysis by ID
	GetAnalysis(id string) (*Analysis, error)

	// ListAnalyses returns all analyses
	ListAnalyses() ([]*Analysis, error)

	// DeleteAnalysis removes an analysis from the database
	DeleteAnalysis(id string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(analysisBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveAnalysis saves an analysis to the database
func (b *BoltDB) SaveAnalysis(analysis *Analysis) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(analysisBucketName))
		data, err := json.Marshal(analysis)
		if err != nil {
			return fmt.Errorf("marshaling analysis: %w", err)
		}
		return bucket.Put([]byte(analysis.ID), data)
	})
}

// GetAnalysis retrieves an analysis by ID
func (b *BoltDB) GetAnalysis(id string) (*Analysis, error) {
	var analysis *Analysis
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(analysisBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("analysis not found: %s", id)
		}
		return json.Unmarshal(data, &analysis)
	})
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// ListAnalyses returns all analyses
func (b *BoltDB) ListAnalyses() ([]*Analysis, error) {
	analyses := make([]*Analysis, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(analysisBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var analysis Analysis
			if err := json.Unmarshal(v, &analysis); err != nil {
				return fmt.Errorf("unmarshaling analysis: %w", err)
			}
			analyses = append(analyses, &analysis)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis from the database
func (b *BoltDB) DeleteAnalysis(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(analysisBucketName))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
