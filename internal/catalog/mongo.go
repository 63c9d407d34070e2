package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bakingstudio/course-linebot-go/internal/config"
	"github.com/bakingstudio/course-linebot-go/internal/errors"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
)

// collectionName is the MongoDB collection holding course documents.
const collectionName = "courses"

// Provider supplies the active course catalog.
type Provider interface {
	// FetchActive returns all courses whose active flag is exactly the
	// boolean true. It never fails; on store errors it returns an empty
	// slice so callers can fall back to a friendly reply.
	FetchActive(ctx context.Context) []Course
}

// Store reads course documents from MongoDB.
type Store struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, cred config.StoreCredential, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cred.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client:  client,
		coll:    client.Database(cred.Database).Collection(collectionName),
		timeout: timeout,
		log:     log.WithModule("catalog"),
		metrics: m,
	}, nil
}

// FetchActive loads every course document and keeps those whose active
// field is the boolean true. Documents where active is missing, a string,
// a number, or anything else are excluded.
//
// Store failures are absorbed: the error is logged and an empty catalog
// is returned so the caller can still reply to the user.
func (s *Store) FetchActive(ctx context.Context) []Course {
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.coll.Find(fetchCtx, bson.D{})
	if err != nil {
		s.log.WithError(err).Error("catalog fetch failed")
		s.metrics.RecordCatalogFetch("error", time.Since(start).Seconds(), 0)
		return []Course{}
	}
	defer cursor.Close(fetchCtx)

	courses := []Course{}
	for cursor.Next(fetchCtx) {
		var doc courseDoc
		if err := cursor.Decode(&doc); err != nil {
			s.log.WithError(err).Warn("skipping undecodable course document")
			continue
		}
		if course, active := doc.toCourse(); active {
			courses = append(courses, course)
		}
	}
	if err := cursor.Err(); err != nil {
		s.log.WithError(err).Error("catalog cursor failed")
		s.metrics.RecordCatalogFetch("error", time.Since(start).Seconds(), 0)
		return []Course{}
	}

	s.metrics.RecordCatalogFetch("success", time.Since(start).Seconds(), len(courses))
	return courses
}

// Ready pings the store. Used by the readiness endpoint.
func (s *Store) Ready(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// courseDoc mirrors the raw document shape. Pointer fields distinguish
// missing values, which collapse to the empty string. ID and active keep
// their raw BSON form so type checks stay exact.
type courseDoc struct {
	ID          bson.RawValue `bson:"_id"`
	Title       *string       `bson:"title"`
	Description *string       `bson:"description"`
	Price       bson.RawValue `bson:"price"`
	ImageURL    *string       `bson:"image"`
	Link        *string       `bson:"link"`
	Status      *string       `bson:"status"`
	Category    *string       `bson:"category"`
	Keyword     *string       `bson:"keyword"`
	Active      bson.RawValue `bson:"active"`
}

// toCourse converts the document to a Course and reports whether the
// document is active. Only a true BSON boolean counts as active.
func (d courseDoc) toCourse() (Course, bool) {
	if d.Active.Type != bson.TypeBoolean || !d.Active.Boolean() {
		return Course{}, false
	}

	return Course{
		ID:          rawID(d.ID),
		Title:       strOrEmpty(d.Title),
		Description: strOrEmpty(d.Description),
		Price:       rawPrice(d.Price),
		ImageURL:    strOrEmpty(d.ImageURL),
		Link:        strOrEmpty(d.Link),
		Status:      strOrEmpty(d.Status),
		Category:    strOrEmpty(d.Category),
		Keyword:     strOrEmpty(d.Keyword),
	}, true
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawID renders the document identifier. ObjectIDs become their hex
// form, plain strings pass through, anything else is dropped.
func rawID(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeString:
		return v.StringValue()
	default:
		return ""
	}
}

// rawPrice renders the price field. Operators enter prices as either
// strings or numbers, both display the same way.
func rawPrice(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return ""
	}
}
