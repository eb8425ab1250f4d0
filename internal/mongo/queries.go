package mongo

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("document not found")

type RestaurantQuery struct {
	Text  string // case-insensitive substring of name
	City  string
	Skip  int64
	Limit int64
}

type RatingQuery struct {
	UserID  string
	PlaceID string
	Skip    int64
	Limit   int64
}

type RatingSummary struct {
	Count         int64    `bson:"count" json:"count"`
	Rating        *float64 `bson:"rating" json:"rating,omitempty"`
	FoodRating    *float64 `bson:"food_rating" json:"food_rating,omitempty"`
	ServiceRating *float64 `bson:"service_rating" json:"service_rating,omitempty"`
}

// PlaceIDValue matches placeID either as the integer the loader stores or,
// for non-numeric ids, as the raw string.
func PlaceIDValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

func (c *Client) FindRestaurants(ctx context.Context, q RestaurantQuery) ([]bson.M, int64, error) {
	filter := bson.M{}
	if q.Text != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Text), "$options": "i"}
	}
	if q.City != "" {
		filter["city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(q.City) + "$", "$options": "i"}
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "placeID", Value: 1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	return c.findPage(ctx, RestaurantsCollection, filter, opts)
}

func (c *Client) FindRestaurant(ctx context.Context, placeID string) (bson.M, error) {
	var out bson.M
	err := c.DB.Collection(RestaurantsCollection).
		FindOne(ctx, bson.M{"placeID": PlaceIDValue(placeID)}, options.FindOne().SetProjection(bson.M{"_id": 0})).
		Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FindRatings(ctx context.Context, q RatingQuery) ([]bson.M, int64, error) {
	filter := bson.M{}
	if q.UserID != "" {
		filter["userID"] = q.UserID
	}
	if q.PlaceID != "" {
		filter["placeID"] = PlaceIDValue(q.PlaceID)
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "userID", Value: 1}, {Key: "placeID", Value: 1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	return c.findPage(ctx, RatingsCollection, filter, opts)
}

// RatingSummary averages the rating columns of one place.
func (c *Client) RatingSummary(ctx context.Context, placeID string) (RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"placeID": PlaceIDValue(placeID)}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"count":          bson.M{"$sum": 1},
			"rating":         bson.M{"$avg": "$rating"},
			"food_rating":    bson.M{"$avg": "$food_rating"},
			"service_rating": bson.M{"$avg": "$service_rating"},
		}}},
	}
	cur, err := c.DB.Collection(RatingsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return RatingSummary{}, err
	}
	defer cur.Close(ctx)

	var out RatingSummary
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return RatingSummary{}, err
		}
	}
	return out, cur.Err()
}

func (c *Client) findPage(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions) ([]bson.M, int64, error) {
	col := c.DB.Collection(collection)
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []bson.M{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
