package mongo

import (
	"context"
	"errors"

	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weeklyPlanCollectionName = "weekly_plans"

// newestFirst orders plans by creation time, then by version for plans
// created within the same instant.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "version", Value: -1}}

// mongoWeeklyPlanRepository implements repository.WeeklyPlanRepository
type mongoWeeklyPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoWeeklyPlanRepository(db *mongo.Database) repository.WeeklyPlanRepository {
	return &mongoWeeklyPlanRepository{
		collection: db.Collection(weeklyPlanCollectionName),
	}
}

// Save inserts a new plan. The plan ID is assigned by the planner.
func (r *mongoWeeklyPlanRepository) Save(ctx context.Context, plan *domain.WeeklyPlan) error {
	if plan.ID == "" || plan.UserID == "" {
		return errors.New("plan requires id and userId")
	}
	_, err := r.collection.InsertOne(ctx, plan)
	return err
}

func (r *mongoWeeklyPlanRepository) GetByID(ctx context.Context, id string) (*domain.WeeklyPlan, error) {
	var plan domain.WeeklyPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mongoWeeklyPlanRepository) GetLatest(ctx context.Context, userID string) (*domain.WeeklyPlan, error) {
	var plan domain.WeeklyPlan
	opts := options.FindOne().SetSort(newestFirst)
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mongoWeeklyPlanRepository) GetAll(ctx context.Context, userID string) ([]domain.WeeklyPlan, error) {
	plans := []domain.WeeklyPlan{}
	findOptions := options.Find().SetSort(newestFirst)

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mongoWeeklyPlanRepository) Update(ctx context.Context, plan *domain.WeeklyPlan) error {
	if plan.ID == "" {
		return errors.New("plan ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"validation": plan.Validation,
			"metadata":   plan.Metadata,
			"archiveKey": plan.ArchiveKey,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return errors.Join(repository.ErrUpdateFailed, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWeeklyPlanIndexes creates the indexes behind the latest-plan and
// history queries and returns their names. Call during startup.
func EnsureWeeklyPlanIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	collection := db.Collection(weeklyPlanCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created"),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}},
			Options: options.Index().SetName("parent").SetSparse(true),
		},
	}
	return collection.Indexes().CreateMany(ctx, indexes)
}
