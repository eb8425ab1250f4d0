package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPlaceIDValue(t *testing.T) {
	assert.Equal(t, int64(132560), PlaceIDValue("132560"))
	assert.Equal(t, "abc", PlaceIDValue("abc"))
}

func TestClient_Queries(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find_restaurants", func(mt *mtest.T) {
		c := NewFromDatabase(mt.DB)
		ns := mt.DB.Name() + "." + RestaurantsCollection
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "placeID", Value: int64(132560)}, {Key: "name", Value: "puesto de gorditas"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		items, total, err := c.FindRestaurants(context.Background(), RestaurantQuery{Text: "gorditas", Limit: 10})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "puesto de gorditas", items[0]["name"])
		assert.Equal(t, int64(1), total)
	})

	mt.Run("find_restaurant_not_found", func(mt *mtest.T) {
		c := NewFromDatabase(mt.DB)
		ns := mt.DB.Name() + "." + RestaurantsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := c.FindRestaurant(context.Background(), "999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("rating_summary", func(mt *mtest.T) {
		c := NewFromDatabase(mt.DB)
		ns := mt.DB.Name() + "." + RatingsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: int32(4)},
			{Key: "rating", Value: 1.5},
			{Key: "food_rating", Value: 1.25},
			{Key: "service_rating", Value: nil},
		}))

		s, err := c.RatingSummary(context.Background(), "132560")
		require.NoError(t, err)
		assert.Equal(t, int64(4), s.Count)
		require.NotNil(t, s.Rating)
		assert.InDelta(t, 1.5, *s.Rating, 1e-9)
		assert.Nil(t, s.ServiceRating)
	})

	mt.Run("rating_summary_no_ratings", func(mt *mtest.T) {
		c := NewFromDatabase(mt.DB)
		ns := mt.DB.Name() + "." + RatingsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		s, err := c.RatingSummary(context.Background(), "1")
		require.NoError(t, err)
		assert.Zero(t, s.Count)
		assert.Nil(t, s.Rating)
	})
}
