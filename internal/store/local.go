package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"trip_logger/internal/model"
)

const idSuffixChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// LocalStore is the on-device fallback backend: one bbolt bucket per
// collection, records stored as JSON keyed by a locally generated id. The
// file survives process restarts. It is single-process; concurrent external
// processes opening the same file are not supported.
type LocalStore struct {
	db *bolt.DB
}

// NewLocalStore opens (or creates) the bbolt file at path and ensures the
// three collection buckets exist.
func NewLocalStore(path string) (*LocalStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{CollUsers, CollVehicles, CollTrips} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db}, nil
}

// generateID produces an opaque id: base36 unix millis plus a short random
// suffix. Unique within the store's lifetime; never reused after deletion.
func generateID() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idSuffixChars[rand.Intn(len(idSuffixChars))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(suffix)
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func localList[T any](s *LocalStore, bucket string) ([]T, error) {
	var out []T
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			var rec T
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt record in %s: %w", bucket, err)
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func localPut(s *LocalStore, bucket, id string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s record: %w", bucket, err)
	}
	return nil
}

func localUpdate(s *LocalStore, bucket, id string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Put([]byte(id), data)
	})
}

func localDelete(s *LocalStore, bucket, id string) error {
	// Deleting a missing id is not an error
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(id))
	})
}

// --- Users ---

func (s *LocalStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return localList[model.User](s, CollUsers)
}

func (s *LocalStore) CreateUser(ctx context.Context, user model.User) (string, error) {
	user.ID = generateID()
	if err := localPut(s, CollUsers, user.ID, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *LocalStore) UpdateUser(ctx context.Context, id string, user model.User) error {
	user.ID = id
	return localUpdate(s, CollUsers, id, user)
}

func (s *LocalStore) DeleteUser(ctx context.Context, id string) error {
	return localDelete(s, CollUsers, id)
}

func (s *LocalStore) UserExistsWithRole(ctx context.Context, role string) (bool, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// --- Vehicles ---

func (s *LocalStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return localList[model.Vehicle](s, CollVehicles)
}

func (s *LocalStore) CreateVehicle(ctx context.Context, vehicle model.Vehicle) (string, error) {
	vehicle.ID = generateID()
	if err := localPut(s, CollVehicles, vehicle.ID, vehicle); err != nil {
		return "", err
	}
	return vehicle.ID, nil
}

func (s *LocalStore) UpdateVehicle(ctx context.Context, id string, vehicle model.Vehicle) error {
	vehicle.ID = id
	return localUpdate(s, CollVehicles, id, vehicle)
}

func (s *LocalStore) DeleteVehicle(ctx context.Context, id string) error {
	return localDelete(s, CollVehicles, id)
}

// --- Trips ---

func (s *LocalStore) ListTrips(ctx context.Context) ([]model.Trip, error) {
	return localList[model.Trip](s, CollTrips)
}

func (s *LocalStore) GetTrip(ctx context.Context, id string) (*model.Trip, error) {
	var trip model.Trip
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(CollTrips)).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &trip)
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *LocalStore) CreateTrip(ctx context.Context, trip model.Trip) (string, error) {
	trip.ID = generateID()
	if err := localPut(s, CollTrips, trip.ID, trip); err != nil {
		return "", err
	}
	return trip.ID, nil
}

func (s *LocalStore) UpdateTrip(ctx context.Context, id string, trip model.Trip) error {
	trip.ID = id
	return localUpdate(s, CollTrips, id, trip)
}

func (s *LocalStore) DeleteTrip(ctx context.Context, id string) error {
	return localDelete(s, CollTrips, id)
}

func (s *LocalStore) ActiveTripForDriver(ctx context.Context, driverID string) (*model.Trip, error) {
	trips, err := s.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].DriverID == driverID && trips[i].Status == model.TripStatusActive {
			return &trips[i], nil
		}
	}
	return nil, nil
}
