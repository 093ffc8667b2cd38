package repository

import (
	"SmartShop/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveCart(ctx context.Context, cart *entity.Cart) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	cart.UpdatedAt = time.Now().UTC()

	collection := connection.Database(m.database).Collection(basketCollection)
	filter := bson.D{{"sessionId", cart.SessionID}}
	update := bson.M{"$set": cart}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{"sessionId", sessionID}}
	collection := connection.Database(m.database).Collection(basketCollection)
	result := collection.FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, m.findError(result.Err())
	}
	cart := &entity.Cart{}
	err = result.Decode(cart)
	if err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return cart, nil
}

func (m *MongoDB) DeleteCart(ctx context.Context, sessionID string) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(basketCollection)
	_, err = collection.DeleteOne(ctx, bson.D{{"sessionId", sessionID}})
	if err != nil {
		return fmt.Errorf("mongodb delete error: %w", err)
	}
	return nil
}
