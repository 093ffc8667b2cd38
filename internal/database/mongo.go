package repository

import (
	"SmartShop/internal/config"
	"SmartShop/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	productsCollection  = "products"
	ordersCollection    = "orders"
	questionsCollection = "custom_questions"
	basketCollection    = "baskets"
)

type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
	log           *slog.Logger
}

func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		log:           logger.With(sl.Module("mongodb")),
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(context.Background())
}

func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("mongodb find error: %w", err)
}

// EnsureIndexes creates the unique and lookup indexes the repository relies on.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{"username", 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{"email", 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{"seller_id", 1}}},
			{Keys: bson.D{{"category", 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{"user_id", 1}, {"created_at", -1}}},
			{Keys: bson.D{{"order_items.seller_id", 1}, {"created_at", -1}}},
		},
		basketCollection: {
			{Keys: bson.D{{"sessionId", 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err = db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongodb create indexes on %s: %w", name, err)
		}
	}
	return nil
}
