package repository

import (
	"SmartShop/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveQuestion(ctx context.Context, q *entity.CustomQuestion) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(questionsCollection)
	_, err = collection.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("mongodb insert question: %w", err)
	}
	return nil
}

func (m *MongoDB) ListQuestions(ctx context.Context, status entity.QuestionStatus) ([]entity.CustomQuestion, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{}
	if status != "" {
		filter = bson.D{{"status", status}}
	}

	collection := connection.Database(m.database).Collection(questionsCollection)
	cursor, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{"created_at", -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := make([]entity.CustomQuestion, 0)
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("mongodb decode questions: %w", err)
	}
	return questions, nil
}

func (m *MongoDB) UpdateQuestionStatus(ctx context.Context, id string, status entity.QuestionStatus) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(questionsCollection)
	res, err := collection.UpdateOne(ctx, bson.D{{"_id", id}}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("mongodb update question: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.NotFoundError("question " + id)
	}
	return nil
}
