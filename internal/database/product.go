package repository

import (
	"SmartShop/entity"
	"context"
	"fmt"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveProduct(ctx context.Context, product *entity.Product) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	_, err = collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("mongodb insert product: %w", err)
	}
	return nil
}

func (m *MongoDB) UpdateProduct(ctx context.Context, product *entity.Product) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	res, err := collection.ReplaceOne(ctx, bson.D{{"_id", product.ID}}, product)
	if err != nil {
		return fmt.Errorf("mongodb replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.NotFoundError("product " + product.ID)
	}
	return nil
}

func (m *MongoDB) DeleteProduct(ctx context.Context, id string) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	res, err := collection.DeleteOne(ctx, bson.D{{"_id", id}})
	if err != nil {
		return fmt.Errorf("mongodb delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.NotFoundError("product " + id)
	}
	return nil
}

func (m *MongoDB) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)

	var product entity.Product
	err = collection.FindOne(ctx, bson.D{{"_id", id}}).Decode(&product)
	if err != nil {
		return nil, m.findError(err)
	}
	return &product, nil
}

// productFilter translates the filter into the same predicate as ProductFilter.Match.
func productFilter(f entity.ProductFilter) bson.D {
	filter := bson.D{}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{"name", pattern}},
			bson.D{{"description", pattern}},
		}})
	}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	price := bson.D{}
	if f.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *f.MaxPrice})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: price})
	}
	switch f.Stock {
	case entity.StockIn:
		filter = append(filter, bson.E{Key: "stock_quantity", Value: bson.D{{"$gt", 0}}})
	case entity.StockOut:
		filter = append(filter, bson.E{Key: "stock_quantity", Value: 0})
	}
	if f.SellerID != "" {
		filter = append(filter, bson.E{Key: "seller_id", Value: f.SellerID})
	}
	return filter
}

func (m *MongoDB) ListProducts(ctx context.Context, f entity.ProductFilter) ([]entity.Product, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	opts := options.Find().SetSort(bson.D{{"created_at", -1}})
	cursor, err := collection.Find(ctx, productFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]entity.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb decode products: %w", err)
	}
	return products, nil
}

func (m *MongoDB) Categories(ctx context.Context) ([]string, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	values, err := collection.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongodb distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
