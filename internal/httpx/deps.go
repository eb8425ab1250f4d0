package httpx

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cache"
	"github.com/nadissa1508/CC3089-LAB-4/internal/ingest"
	mdb "github.com/nadissa1508/CC3089-LAB-4/internal/mongo"
)

// Catalog is the read side of the database the handlers need.
type Catalog interface {
	DatabaseName() string
	Ping(ctx context.Context) error
	FindRestaurants(ctx context.Context, q mdb.RestaurantQuery) ([]bson.M, int64, error)
	FindRestaurant(ctx context.Context, placeID string) (bson.M, error)
	RatingSummary(ctx context.Context, placeID string) (mdb.RatingSummary, error)
	FindRatings(ctx context.Context, q mdb.RatingQuery) ([]bson.M, int64, error)
	Count(ctx context.Context, collection string) (int64, error)
}

type Deps struct {
	Catalog     Catalog
	Cache       *cache.Cache    // nil disables caching
	History     *ingest.History // nil omits last_load from /stats
	Collections []string        // reported by /stats
	Log         logrus.FieldLogger
	Limiter     *RateLimiter // nil disables rate limiting
}

func (d Deps) logger() logrus.FieldLogger {
	if d.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return l
	}
	return d.Log
}
