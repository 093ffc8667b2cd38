package repository

import (
	"SmartShop/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveOrder(ctx context.Context, order *entity.Order) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	_, err = collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("mongodb insert order: %w", err)
	}
	return nil
}

func (m *MongoDB) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)

	var order entity.Order
	err = collection.FindOne(ctx, bson.D{{"_id", id}}).Decode(&order)
	if err != nil {
		return nil, m.findError(err)
	}
	return &order, nil
}

func (m *MongoDB) findOrders(ctx context.Context, filter bson.D) ([]entity.Order, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(ordersCollection)
	opts := options.Find().SetSort(bson.D{{"created_at", -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]entity.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongodb decode orders: %w", err)
	}
	return orders, nil
}

func (m *MongoDB) ListOrdersByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return m.findOrders(ctx, bson.D{{"user_id", userID}})
}

func (m *MongoDB) ListOrdersBySeller(ctx context.Context, sellerID string) ([]entity.Order, error) {
	return m.findOrders(ctx, bson.D{{"order_items.seller_id", sellerID}})
}

// ApplyStatusChange runs the stock decrements and the order update in one
// multi-document transaction. Each decrement only matches while stock covers
// the quantity, so stock never goes negative under concurrent accepts.
// Transactions need a replica set or sharded cluster.
func (m *MongoDB) ApplyStatusChange(ctx context.Context, change *entity.StatusChange) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	session, err := connection.StartSession()
	if err != nil {
		return fmt.Errorf("mongodb start session: %w", err)
	}
	defer session.EndSession(ctx)

	db := connection.Database(m.database)
	products := db.Collection(productsCollection)
	orders := db.Collection(ordersCollection)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, item := range change.Decrements {
			res, err := products.UpdateOne(sc,
				bson.D{{"_id", item.ProductID}, {"stock_quantity", bson.D{{"$gte", item.Quantity}}}},
				bson.D{{"$inc", bson.D{{"stock_quantity", -item.Quantity}}}},
			)
			if err != nil {
				return nil, fmt.Errorf("mongodb decrement stock: %w", err)
			}
			if res.MatchedCount == 0 {
				return nil, &entity.InsufficientStockError{Item: item}
			}
		}

		filter := bson.D{{"_id", change.OrderID}, {"status", change.Expect}}
		update := bson.D{
			{"$set", bson.D{
				{"status", change.Status},
				{"updated_at", change.Record.Timestamp},
			}},
			{"$push", bson.D{{"history", change.Record}}},
		}
		if change.DeductedBy != "" {
			filter = append(filter, bson.E{Key: "stock_deducted_by", Value: bson.D{{"$ne", change.DeductedBy}}})
			update = append(update, bson.E{Key: "$addToSet", Value: bson.D{{"stock_deducted_by", change.DeductedBy}}})
		}

		res, err := orders.UpdateOne(sc, filter, update)
		if err != nil {
			return nil, fmt.Errorf("mongodb update order: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, entity.ErrConflict
		}
		return nil, nil
	})
	return err
}
