package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trip_logger/internal/model"
)

const mongoOpTimeout = 5 * time.Second

// MongoStore is the remote document backend. Ids are assigned by the server
// (ObjectID hex); the id is never written into the document body.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to the configured MongoDB deployment and pings it.
// A failed connect or ping is reported as ErrBackendUnavailable so the caller
// can decide whether to abort startup.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// wrapMongoErr tags driver I/O failures as backend unavailability. Decode
// errors and no-document results are handled at the call sites.
func wrapMongoErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrBackendUnavailable, err)
}

// userDoc pairs the server-assigned _id with the document body. The model's
// own ID field carries bson:"-" so the body never contains an id.
type userDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	model.User `bson:",inline"`
}

type vehicleDoc struct {
	OID           primitive.ObjectID `bson:"_id,omitempty"`
	model.Vehicle `bson:",inline"`
}

type tripDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	model.Trip `bson:",inline"`
}

// --- Users ---

func (s *MongoStore) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.coll(CollUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapMongoErr("list users", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapMongoErr("decode users", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		u := d.User
		u.ID = d.OID.Hex()
		users = append(users, u)
	}
	return users, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user model.User) (string, error) {
	return s.insert(ctx, CollUsers, user)
}

func (s *MongoStore) UpdateUser(ctx context.Context, id string, user model.User) error {
	return s.replaceFields(ctx, CollUsers, id, user, nil)
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	return s.deleteByID(ctx, CollUsers, id)
}

func (s *MongoStore) UserExistsWithRole(ctx context.Context, role string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	count, err := s.coll(CollUsers).CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return false, wrapMongoErr("count users by role", err)
	}
	return count > 0, nil
}

// --- Vehicles ---

func (s *MongoStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.coll(CollVehicles).Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapMongoErr("list vehicles", err)
	}
	defer cursor.Close(ctx)

	var docs []vehicleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapMongoErr("decode vehicles", err)
	}

	vehicles := make([]model.Vehicle, 0, len(docs))
	for _, d := range docs {
		v := d.Vehicle
		v.ID = d.OID.Hex()
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (s *MongoStore) CreateVehicle(ctx context.Context, vehicle model.Vehicle) (string, error) {
	return s.insert(ctx, CollVehicles, vehicle)
}

func (s *MongoStore) UpdateVehicle(ctx context.Context, id string, vehicle model.Vehicle) error {
	return s.replaceFields(ctx, CollVehicles, id, vehicle, nil)
}

func (s *MongoStore) DeleteVehicle(ctx context.Context, id string) error {
	return s.deleteByID(ctx, CollVehicles, id)
}

// --- Trips ---

func (s *MongoStore) ListTrips(ctx context.Context) ([]model.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	cursor, err := s.coll(CollTrips).Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapMongoErr("list trips", err)
	}
	defer cursor.Close(ctx)

	var docs []tripDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapMongoErr("decode trips", err)
	}

	trips := make([]model.Trip, 0, len(docs))
	for _, d := range docs {
		t := d.Trip
		t.ID = d.OID.Hex()
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *MongoStore) GetTrip(ctx context.Context, id string) (*model.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var doc tripDoc
	err = s.coll(CollTrips).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, wrapMongoErr("get trip", err)
	}

	trip := doc.Trip
	trip.ID = doc.OID.Hex()
	return &trip, nil
}

func (s *MongoStore) CreateTrip(ctx context.Context, trip model.Trip) (string, error) {
	return s.insert(ctx, CollTrips, trip)
}

// UpdateTrip replaces the trip's fields. Optional fields that are absent on
// the record (endTime, durationMinutes, remarks) are $unset rather than
// written as null, so an admin revision that clears the end time leaves no
// stale completion fields behind.
func (s *MongoStore) UpdateTrip(ctx context.Context, id string, trip model.Trip) error {
	unset := bson.M{}
	if trip.EndTime == nil {
		unset["endTime"] = ""
	}
	if trip.DurationMinutes == nil {
		unset["durationMinutes"] = ""
	}
	if trip.Remarks == nil {
		unset["remarks"] = ""
	}
	return s.replaceFields(ctx, CollTrips, id, trip, unset)
}

func (s *MongoStore) DeleteTrip(ctx context.Context, id string) error {
	return s.deleteByID(ctx, CollTrips, id)
}

func (s *MongoStore) ActiveTripForDriver(ctx context.Context, driverID string) (*model.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var doc tripDoc
	filter := bson.M{"driverId": driverID, "status": model.TripStatusActive}
	err := s.coll(CollTrips).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapMongoErr("find active trip", err)
	}

	trip := doc.Trip
	trip.ID = doc.OID.Hex()
	return &trip, nil
}

// --- shared helpers ---

func (s *MongoStore) insert(ctx context.Context, coll string, rec any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	res, err := s.coll(coll).InsertOne(ctx, rec)
	if err != nil {
		return "", wrapMongoErr("insert into "+coll, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", coll, res.InsertedID)
	}
	return oid.Hex(), nil
}

// replaceFields runs a $set of the record's present fields (absent optional
// fields are omitted by their omitempty tags, never written as null) plus an
// optional $unset of cleared fields.
func (s *MongoStore) replaceFields(ctx context.Context, coll, id string, rec any, unset bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	update := bson.M{"$set": rec}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.coll(coll).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return wrapMongoErr("update "+coll, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) deleteByID(ctx context.Context, coll, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids cannot name an existing record; delete is idempotent
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	_, err = s.coll(coll).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapMongoErr("delete from "+coll, err)
	}
	return nil
}
