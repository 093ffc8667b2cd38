package repository

import (
	"SmartShop/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (m *MongoDB) CreateUser(ctx context.Context, user *entity.User) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	_, err = collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("mongodb insert user: %w", err)
	}
	return nil
}

func (m *MongoDB) getUser(ctx context.Context, filter bson.D) (*entity.User, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)

	var user entity.User
	err = collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return m.getUser(ctx, bson.D{{"_id", id}})
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.getUser(ctx, bson.D{{"email", email}})
}

func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return m.getUser(ctx, bson.D{{"username", username}})
}

func (m *MongoDB) setUserField(ctx context.Context, id string, update bson.M) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	res, err := collection.UpdateOne(ctx, bson.D{{"_id", id}}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("mongodb update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.NotFoundError("user " + id)
	}
	return nil
}

func (m *MongoDB) SetEmailVerified(ctx context.Context, id string) error {
	return m.setUserField(ctx, id, bson.M{"email_verified": true})
}

func (m *MongoDB) SetPasswordHash(ctx context.Context, id, hash string) error {
	return m.setUserField(ctx, id, bson.M{"password_hash": hash})
}
