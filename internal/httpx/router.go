package httpx

import (
	"context"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	docs "github.com/nadissa1508/CC3089-LAB-4/internal/docs"
)

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
	DB     string    `json:"db"`
	Error  string    `json:"error,omitempty"`
}

// @title           Restaurants & Ratings API
// @version         1.0
// @description     Read-only access to the restaurants and ratings collections.
// @BasePath        /
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Health godoc
	// @Summary  Liveness probe; pings the database
	// @Tags     health
	// @Success  200  {object}  HealthResponse
	// @Failure  503  {object}  HealthResponse
	// @Router   /healthz [get]
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Time: time.Now().UTC(), DB: d.Catalog.DatabaseName()}
		status := http.StatusOK
		if err := d.Catalog.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	})
	mux.HandleFunc("GET /restaurants", restaurantsListHandler(d)) // ?q=&city=&page=&limit=
	mux.HandleFunc("GET /restaurants/{placeID}", restaurantGetHandler(d))
	mux.HandleFunc("GET /ratings", ratingsListHandler(d)) // ?userID=&placeID=&page=&limit=
	mux.HandleFunc("GET /stats", statsHandler(d))

	mux.Handle("/swagger/", httpSwagger.WrapHandler)
	mux.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
	})

	var h http.Handler = mux
	if d.Limiter != nil {
		h = LimitMiddleware(d.Limiter, h)
	}
	return logRequests(d.logger().WithField("component", "httpx"), h)
}
