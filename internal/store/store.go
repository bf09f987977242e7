// Package store persists the workout list as one JSON array in a kv slot.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/burakkosova/mapty/internal/kv"
	"github.com/burakkosova/mapty/internal/observability"
	"github.com/burakkosova/mapty/internal/workout"
)

const DefaultKey = "workouts"

type Store struct {
	kv  kv.Store
	key string
}

func New(backend kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: backend, key: key}
}

func (s *Store) Key() string {
	return s.key
}

// Save overwrites the slot with the whole list.
func (s *Store) Save(ctx context.Context, workouts []workout.Workout) error {
	if workouts == nil {
		workouts = []workout.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		observability.RecordStorageFailure("save")
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

// Load returns the stored list, or nil when the slot is missing or cannot
// be read or decoded. One bad entry discards the whole list.
func (s *Store) Load(ctx context.Context) []workout.Workout {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		observability.RecordStorageFailure("load")
		log.Printf("load workouts: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var workouts []workout.Workout
	if err := json.Unmarshal([]byte(raw), &workouts); err != nil {
		observability.RecordStorageFailure("decode")
		log.Printf("discarding stored workouts: %v", err)
		return nil
	}
	return workouts
}

// Clear removes the slot entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		observability.RecordStorageFailure("clear")
		return fmt.Errorf("clear workouts: %w", err)
	}
	return nil
}
