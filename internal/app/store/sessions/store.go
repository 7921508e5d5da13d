// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds one remembered session per device.
const Collection = "remembered_sessions"

// Remembered is the durable session of one device. Token is stored encoded
// by the session codec, never in the clear.
type Remembered struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	DeviceID  string             `bson:"device_id"`
	Token     string             `bson:"token"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	ExpiresAt *time.Time         `bson:"expires_at,omitempty"` // nil: never expires
}

// Store manages remembered sessions.
type Store struct {
	c     *mongo.Collection
	codec *session.Codec
	ttl   time.Duration
}

// New creates a Store. A ttl of 0 keeps remembered sessions until logout.
func New(db *mongo.Database, codec *session.Codec, ttl time.Duration) *Store {
	return &Store{c: db.Collection(Collection), codec: codec, ttl: ttl}
}

// EnsureIndexes creates the device lookup index and the expiry index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "device_id", Value: 1}},
			Options: options.Index().SetName("uniq_remembered_device").SetUnique(true),
		},
		// Mongo removes documents once expires_at has passed.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_remembered_expires").SetExpireAfterSeconds(0),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Get returns the decoded token remembered for deviceID. found is false
// when there is none, when it has expired, or when it no longer decodes.
func (s *Store) Get(ctx context.Context, deviceID string) (token string, found bool, err error) {
	var rec Remembered
	err = s.c.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// The TTL monitor runs about once a minute.
	if rec.ExpiresAt != nil && !rec.ExpiresAt.After(time.Now()) {
		return "", false, nil
	}
	token, err = s.codec.Decode(rec.Token)
	if err != nil {
		if session.IsUndecodable(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, true, nil
}

// Put remembers token for deviceID, replacing any previous one.
func (s *Store) Put(ctx context.Context, deviceID, token string) error {
	enc, err := s.codec.Encode(token)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	set := bson.M{"token": enc, "updated_at": now}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	if s.ttl > 0 {
		set["expires_at"] = now.Add(s.ttl)
	} else {
		update["$unset"] = bson.M{"expires_at": ""}
	}
	_, err = s.c.UpdateOne(ctx,
		bson.M{"device_id": deviceID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// Delete forgets deviceID. Deleting an unknown device is not an error.
func (s *Store) Delete(ctx context.Context, deviceID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"device_id": deviceID})
	return err
}

// DeleteExpired removes sessions whose expiry has passed without waiting
// for the TTL monitor.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Scope returns the durable session scope of deviceID.
func (s *Store) Scope(deviceID string) session.Scope {
	return deviceScope{store: s, deviceID: deviceID}
}

type deviceScope struct {
	store    *Store
	deviceID string
}

func (d deviceScope) Load(ctx context.Context) (string, error) {
	token, _, err := d.store.Get(ctx, d.deviceID)
	return token, err
}

func (d deviceScope) Save(ctx context.Context, token string) error {
	return d.store.Put(ctx, d.deviceID, token)
}

func (d deviceScope) Clear(ctx context.Context) error {
	return d.store.Delete(ctx, d.deviceID)
}
