package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cache"
	mdb "github.com/nadissa1508/CC3089-LAB-4/internal/mongo"
)

type RestaurantsResponse struct {
	Items []map[string]any `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

type RestaurantResponse struct {
	Restaurant map[string]any    `json:"restaurant"`
	Ratings    mdb.RatingSummary `json:"ratings"`
}

// RestaurantsList godoc
// @Summary      List restaurants
// @Description  Search and paginate the loaded restaurants
// @Tags         restaurants
// @Produce      json
// @Param        q      query  string  false  "case-insensitive substring of name"
// @Param        city   query  string  false  "city (exact, case-insensitive)"
// @Param        page   query  int     false  "page (>=1)"      default(1)
// @Param        limit  query  int     false  "items per page"  default(50)  minimum(1)  maximum(500)
// @Success      200  {object}  RestaurantsResponse
// @Failure      429  {object}  HTTPError
// @Failure      500  {object}  HTTPError
// @Router       /restaurants [get]
func restaurantsListHandler(d Deps) http.HandlerFunc {
	log := d.logger().WithField("component", "httpx")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		q := cleanParam(r, "q")
		city := cleanParam(r, "city")
		page, limit, skip := pageParams(r)

		key := restaurantsKey(q, city, page, limit)
		var resp RestaurantsResponse
		if hit, err := d.Cache.GetJSON(ctx, key, &resp); err != nil {
			log.WithError(err).Warn("cache read failed")
		} else if hit {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		items, total, err := d.Catalog.FindRestaurants(ctx, mdb.RestaurantQuery{Text: q, City: city, Skip: skip, Limit: limit})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp = RestaurantsResponse{Items: toMaps(items), Meta: PageMeta{Page: page, Limit: int(limit), Total: total}}
		if err := d.Cache.SetJSON(ctx, key, resp); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// RestaurantGet godoc
// @Summary      Get a restaurant
// @Description  One restaurant with the average of its ratings
// @Tags         restaurants
// @Produce      json
// @Param        placeID  path  string  true  "placeID"
// @Success      200  {object}  RestaurantResponse
// @Failure      404  {object}  HTTPError
// @Failure      500  {object}  HTTPError
// @Router       /restaurants/{placeID} [get]
func restaurantGetHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		placeID := r.PathValue("placeID")
		doc, err := d.Catalog.FindRestaurant(ctx, placeID)
		if errors.Is(err, mdb.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("restaurant %s not found", placeID))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		summary, err := d.Catalog.RatingSummary(ctx, placeID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, RestaurantResponse{Restaurant: doc, Ratings: summary})
	}
}

func restaurantsKey(q, city string, page int, limit int64) string {
	return cache.Key("restaurants", url.Values{
		"q":     {q},
		"city":  {city},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.FormatInt(limit, 10)},
	}.Encode())
}
