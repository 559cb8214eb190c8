package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storepulse/store-rating/internal/core/domain"
)

const activityCollection = "activity_log"

// ActivityRepository implements ports.ActivityLog on a MongoDB collection.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection)}
}

type activityDoc struct {
	Action      string    `bson:"action"`
	ActorID     uint      `bson:"actor_id"`
	SubjectType string    `bson:"subject_type"`
	SubjectID   uint      `bson:"subject_id"`
	Detail      string    `bson:"detail,omitempty"`
	At          time.Time `bson:"at"`
}

func toActivityDoc(a domain.Activity) activityDoc {
	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	return activityDoc{
		Action:      string(a.Action),
		ActorID:     a.ActorID,
		SubjectType: a.SubjectType,
		SubjectID:   a.SubjectID,
		Detail:      a.Detail,
		At:          at.UTC(),
	}
}

func (d activityDoc) toDomain() domain.Activity {
	return domain.Activity{
		Action:      domain.ActivityAction(d.Action),
		ActorID:     d.ActorID,
		SubjectType: d.SubjectType,
		SubjectID:   d.SubjectID,
		Detail:      d.Detail,
		At:          d.At.UTC(),
	}
}

// Record appends an entry to the audit collection.
func (r *ActivityRepository) Record(ctx context.Context, entry domain.Activity) error {
	if _, err := r.col.InsertOne(ctx, toActivityDoc(entry)); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	out := make([]domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by Recent and by per-subject lookups.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "subject_type", Value: 1}, {Key: "subject_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
