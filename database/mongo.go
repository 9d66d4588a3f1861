package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expensetracker/budget"
	"expensetracker/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore 基于 MongoDB 的 Store 实现，统计使用聚合管道完成
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	expenses *mongo.Collection
	now      func() time.Time
}

// NewMongoStore 连接 MongoDB 并创建索引
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:   client,
		users:    db.Collection("users"),
		expenses: db.Collection("expenses"),
		now:      time.Now,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}
	_, err = s.expenses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create expense indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	prepareUser(u, s.now())
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"emailId": email})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) SaveUser(ctx context.Context, u *models.User) error {
	prepareUser(u, s.now())
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	prepareExpense(e, s.now())
	if _, err := s.expenses.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	var e models.Expense
	err := s.expenses.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": userID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete expense: %w", err)
	}
	return &e, nil
}

func (s *MongoStore) ListExpenses(ctx context.Context, q ExpenseQuery) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := s.expenses.Find(ctx, expenseFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	expenses := make([]models.Expense, 0)
	if err := cur.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return expenses, nil
}

func (s *MongoStore) CountExpenses(ctx context.Context, q ExpenseQuery) (int64, error) {
	n, err := s.expenses.CountDocuments(ctx, expenseFilter(q))
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

func (s *MongoStore) SumRange(ctx context.Context, userID string, start, end time.Time) (RangeTotal, error) {
	cur, err := s.expenses.Aggregate(ctx, sumRangePipeline(userID, start, end))
	if err != nil {
		return RangeTotal{}, fmt.Errorf("aggregate total: %w", err)
	}
	var rows []RangeTotal
	if err := cur.All(ctx, &rows); err != nil {
		return RangeTotal{}, fmt.Errorf("decode total: %w", err)
	}
	if len(rows) == 0 {
		return RangeTotal{}, nil
	}
	return rows[0], nil
}

func (s *MongoStore) SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]budget.CategoryTotal, error) {
	cur, err := s.expenses.Aggregate(ctx, categoryPipeline(userID, start, end))
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	out := make([]budget.CategoryTotal, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func expenseFilter(q ExpenseQuery) bson.D {
	filter := bson.D{{Key: "userId", Value: q.UserID}}
	date := bson.D{}
	if q.Start != nil {
		date = append(date, bson.E{Key: "$gte", Value: *q.Start})
	}
	if q.End != nil {
		date = append(date, bson.E{Key: "$lte", Value: *q.End})
	}
	if len(date) > 0 {
		filter = append(filter, bson.E{Key: "date", Value: date})
	}
	return filter
}

func rangeMatch(userID string, start, end time.Time) bson.D {
	return bson.D{{Key: "$match", Value: expenseFilter(ExpenseQuery{UserID: userID, Start: &start, End: &end})}}
}

func sumRangePipeline(userID string, start, end time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		rangeMatch(userID, start, end),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func categoryPipeline(userID string, start, end time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		rangeMatch(userID, start, end),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}
}
