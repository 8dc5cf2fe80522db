package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoplet-backend/models"
)

// MongoStore persists the storefront in MongoDB. Collections: products,
// users, soldProducts, counters (id sequences).
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// nextSeq returns the next value of a named counter, creating it at 1.
func (s *MongoStore) nextSeq(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", name, err)
	}
	return doc.Seq, nil
}

func (s *MongoStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.db.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := s.db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoStore) CreateProduct(ctx context.Context, p *models.Product) error {
	seq, err := s.nextSeq(ctx, "products")
	if err != nil {
		return err
	}
	p.ID = int(seq)
	_, err = s.db.Collection("products").InsertOne(ctx, p)
	return err
}

func (s *MongoStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	result, err := s.db.Collection("products").ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id int) error {
	result, err := s.db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoStore) ListUsers(ctx context.Context, email string) ([]models.User, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cursor, err := s.db.Collection("users").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	users := s.db.Collection("users")

	count, err := users.CountDocuments(ctx, bson.M{"email": u.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	seq, err := s.nextSeq(ctx, "users")
	if err != nil {
		return err
	}
	u.ID = fmt.Sprintf("%d", seq)
	u.Version = 0
	if u.Orders == nil {
		u.Orders = []models.CartItem{}
	}
	if u.PurchasedItems == nil {
		u.PurchasedItems = []models.PurchaseGroup{}
	}

	_, err = users.InsertOne(ctx, u)
	return err
}

// ReplaceUser is the single write path for user records. The filter carries
// the version the caller read, so a concurrent writer surfaces as ErrConflict
// instead of a silent lost update.
func (s *MongoStore) ReplaceUser(ctx context.Context, u *models.User) error {
	users := s.db.Collection("users")

	update := bson.M{
		"$set": bson.M{
			"email":           u.Email,
			"name":            u.Name,
			"password":        u.Password,
			"role":            u.Role,
			"created_at":      u.CreatedAt,
			"orders":          u.Orders,
			"purchased_items": u.PurchasedItems,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := users.UpdateOne(ctx, bson.M{"_id": u.ID, "version": u.Version}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := users.CountDocuments(ctx, bson.M{"_id": u.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}
		return ErrConflict
	}

	u.Version++
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoStore) ListSoldProducts(ctx context.Context) ([]models.SoldProduct, error) {
	cursor, err := s.db.Collection("soldProducts").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.SoldProduct{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoStore) InsertSoldProducts(ctx context.Context, records []models.SoldProduct) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}
	_, err := s.db.Collection("soldProducts").InsertMany(ctx, docs)
	return err
}

func (s *MongoStore) Stats(ctx context.Context) (*models.Stats, error) {
	products := s.db.Collection("products")
	users := s.db.Collection("users")
	sold := s.db.Collection("soldProducts")

	totalProducts, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalUsers, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalProducts: totalProducts,
		TotalUsers:    totalUsers,
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": []string{"$price", "$stock"}}},
		}},
	}
	cursor, err := products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var result []bson.M
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	if len(result) > 0 {
		if val, ok := result[0]["total"].(float64); ok {
			stats.InventoryValue = val
		}
	}

	salesPipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}},
	}
	cursor, err = sold.Aggregate(ctx, salesPipeline)
	if err != nil {
		return nil, err
	}
	result = nil
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	if len(result) > 0 {
		if val, ok := result[0]["total"].(float64); ok {
			stats.TotalSales = val
		}
	}

	return stats, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}
