package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cache"
	mdb "github.com/nadissa1508/CC3089-LAB-4/internal/mongo"
)

type RatingsResponse struct {
	Items []map[string]any `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

// RatingsList godoc
// @Summary      List ratings
// @Tags         ratings
// @Produce      json
// @Param        userID   query  string  false  "user (e.g. U1077)"
// @Param        placeID  query  string  false  "restaurant placeID"
// @Param        page     query  int     false  "page (>=1)"      default(1)
// @Param        limit    query  int     false  "items per page"  default(50)  minimum(1)  maximum(500)
// @Success      200  {object}  RatingsResponse
// @Failure      429  {object}  HTTPError
// @Failure      500  {object}  HTTPError
// @Router       /ratings [get]
func ratingsListHandler(d Deps) http.HandlerFunc {
	log := d.logger().WithField("component", "httpx")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		userID := cleanParam(r, "userID")
		placeID := cleanParam(r, "placeID")
		page, limit, skip := pageParams(r)

		key := ratingsKey(userID, placeID, page, limit)
		var resp RatingsResponse
		if hit, err := d.Cache.GetJSON(ctx, key, &resp); err != nil {
			log.WithError(err).Warn("cache read failed")
		} else if hit {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		items, total, err := d.Catalog.FindRatings(ctx, mdb.RatingQuery{UserID: userID, PlaceID: placeID, Skip: skip, Limit: limit})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp = RatingsResponse{Items: toMaps(items), Meta: PageMeta{Page: page, Limit: int(limit), Total: total}}
		if err := d.Cache.SetJSON(ctx, key, resp); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func ratingsKey(userID, placeID string, page int, limit int64) string {
	return cache.Key("ratings", url.Values{
		"userID":  {userID},
		"placeID": {placeID},
		"page":    {strconv.Itoa(page)},
		"limit":   {strconv.FormatInt(limit, 10)},
	}.Encode())
}

func toMaps(docs []bson.M) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}
