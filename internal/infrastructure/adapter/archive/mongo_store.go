package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
)

const (
	transfersCollection = "transfers"
	cashoutsCollection  = "cashouts"
	requestsCollection  = "payment_requests"
)

// Config represents MongoDB connection configuration for the warm tier
type Config struct {
	URI         string        `mapstructure:"mongo_uri"`
	Database    string        `mapstructure:"mongo_database"`
	Timeout     time.Duration `mapstructure:"mongo_timeout"`
	MaxPoolSize uint64        `mapstructure:"mongo_max_pool_size"`
}

// transferDoc is the archived transfer document shape
type transferDoc struct {
	ID                 string    `bson:"_id"`
	SenderID           uint64    `bson:"sender_id"`
	ReceiverID         uint64    `bson:"receiver_id"`
	AmountCents        int64     `bson:"amount_cents"`
	Note               string    `bson:"note,omitempty"`
	Visibility         string    `bson:"visibility"`
	Status             string    `bson:"status"`
	FundingSourceLabel string    `bson:"funding_source_label,omitempty"`
	IdempotencyKey     string    `bson:"idempotency_key"`
	CreatedAt          time.Time `bson:"created_at"`
}

type cashoutDoc struct {
	ID               string    `bson:"_id"`
	UserID           uint64    `bson:"user_id"`
	AmountCents      int64     `bson:"amount_cents"`
	DestinationLabel string    `bson:"destination_label,omitempty"`
	Status           string    `bson:"status"`
	CreatedAt        time.Time `bson:"created_at"`
}

type requestDoc struct {
	ID          string    `bson:"_id"`
	RequesterID uint64    `bson:"requester_id"`
	TargetID    uint64    `bson:"target_id"`
	AmountCents int64     `bson:"amount_cents"`
	Note        string    `bson:"note,omitempty"`
	Status      string    `bson:"status"`
	FulfilledBy string    `bson:"fulfilled_by,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// MongoStore implements the warm archive tier on MongoDB. Writes are
// idempotent upserts keyed by record ID, so re-archiving after a crashed run
// never duplicates documents.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
	logger   coreport.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection
func NewMongoStore(ctx context.Context, cfg Config, logger coreport.Logger) (*MongoStore, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   logger,
	}, nil
}

var _ persistence.ArchiveStore = (*MongoStore)(nil)

// EnsureIndexes creates the indexes backing history queries and purges
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	transferIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	if _, err := s.database.Collection(transfersCollection).Indexes().CreateMany(ctx, transferIndexes); err != nil {
		return fmt.Errorf("failed to create transfer indexes: %w", err)
	}

	createdAtIndex := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	for _, name := range []string{cashoutsCollection, requestsCollection} {
		if _, err := s.database.Collection(name).Indexes().CreateMany(ctx, createdAtIndex); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

// StoreTransfers upserts a batch of archived transfers
func (s *MongoStore) StoreTransfers(ctx context.Context, transfers []*entity.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(transfers))
	for i, t := range transfers {
		doc := transferDoc{
			ID:                 t.ID,
			SenderID:           t.SenderID,
			ReceiverID:         t.ReceiverID,
			AmountCents:        t.AmountCents,
			Note:               t.Note,
			Visibility:         string(t.Visibility),
			Status:             string(t.Status),
			FundingSourceLabel: t.FundingSourceLabel,
			IdempotencyKey:     t.IdempotencyKey,
			CreatedAt:          t.CreatedAt,
		}
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": t.ID}).
			SetReplacement(doc).
			SetUpsert(true)
	}

	if _, err := s.database.Collection(transfersCollection).BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("failed to archive transfers: %w", err)
	}
	return nil
}

// StoreCashouts upserts a batch of archived cashouts
func (s *MongoStore) StoreCashouts(ctx context.Context, cashouts []*entity.Cashout) error {
	if len(cashouts) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(cashouts))
	for i, c := range cashouts {
		doc := cashoutDoc{
			ID:               c.ID,
			UserID:           c.UserID,
			AmountCents:      c.AmountCents,
			DestinationLabel: c.DestinationLabel,
			Status:           string(c.Status),
			CreatedAt:        c.CreatedAt,
		}
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": c.ID}).
			SetReplacement(doc).
			SetUpsert(true)
	}

	if _, err := s.database.Collection(cashoutsCollection).BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("failed to archive cashouts: %w", err)
	}
	return nil
}

// StorePaymentRequests upserts a batch of archived payment requests
func (s *MongoStore) StorePaymentRequests(ctx context.Context, requests []*entity.PaymentRequest) error {
	if len(requests) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(requests))
	for i, r := range requests {
		doc := requestDoc{
			ID:          r.ID,
			RequesterID: r.RequesterID,
			TargetID:    r.TargetID,
			AmountCents: r.AmountCents,
			Note:        r.Note,
			Status:      string(r.Status),
			FulfilledBy: r.FulfilledBy,
			CreatedAt:   r.CreatedAt,
		}
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": r.ID}).
			SetReplacement(doc).
			SetUpsert(true)
	}

	if _, err := s.database.Collection(requestsCollection).BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("failed to archive payment requests: %w", err)
	}
	return nil
}

// ListTransfersByUser reads warm-tier transfers for tiered history queries,
// newest first
func (s *MongoStore) ListTransfersByUser(ctx context.Context, q persistence.HistoryQuery) ([]*entity.Transfer, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": q.UserID},
			{"receiver_id": q.UserID},
		},
	}

	created := bson.M{}
	if q.StartDate != nil {
		created["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		created["$lte"] = *q.EndDate
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(q.Limit))

	cursor, err := s.database.Collection(transfersCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived transfers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transferDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode archived transfers: %w", err)
	}

	transfers := make([]*entity.Transfer, len(docs))
	for i, doc := range docs {
		transfers[i] = &entity.Transfer{
			ID:                 doc.ID,
			SenderID:           doc.SenderID,
			ReceiverID:         doc.ReceiverID,
			AmountCents:        doc.AmountCents,
			Note:               doc.Note,
			Visibility:         entity.Visibility(doc.Visibility),
			Status:             entity.TransferStatus(doc.Status),
			FundingSourceLabel: doc.FundingSourceLabel,
			IdempotencyKey:     doc.IdempotencyKey,
			CreatedAt:          doc.CreatedAt,
			Tier:               entity.TierWarm,
		}
	}
	return transfers, nil
}

// PurgeOlderThan permanently deletes archive documents past the compliance
// retention window, across all archived collections
func (s *MongoStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{"created_at": bson.M{"$lt": cutoff}}

	var total int64
	for _, name := range []string{transfersCollection, cashoutsCollection, requestsCollection} {
		result, err := s.database.Collection(name).DeleteMany(ctx, filter)
		if err != nil {
			return total, fmt.Errorf("failed to purge %s: %w", name, err)
		}
		total += result.DeletedCount
	}
	return total, nil
}

// Close disconnects the MongoDB client
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
