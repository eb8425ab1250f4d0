package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cache"
	"github.com/nadissa1508/CC3089-LAB-4/internal/ingest"
)

type StatsResponse struct {
	Database    string           `json:"database"`
	Collections map[string]int64 `json:"collections"`
	LastLoad    *ingest.LastRun  `json:"last_load,omitempty"`
}

// Stats godoc
// @Summary      Collection counts
// @Description  Document count per dataset collection and the last load reports
// @Tags         stats
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  HTTPError
// @Router       /stats [get]
func statsHandler(d Deps) http.HandlerFunc {
	log := d.logger().WithField("component", "httpx")
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		key := cache.Key("stats")
		var resp StatsResponse
		hit, err := d.Cache.GetJSON(ctx, key, &resp)
		if err != nil {
			log.WithError(err).Warn("cache read failed")
		}
		if !hit {
			resp = StatsResponse{Database: d.Catalog.DatabaseName(), Collections: map[string]int64{}}
			for _, c := range d.Collections {
				n, err := d.Catalog.Count(ctx, c)
				if err != nil {
					writeError(w, http.StatusInternalServerError, err.Error())
					return
				}
				resp.Collections[c] = n
			}
			if err := d.Cache.SetJSON(ctx, key, resp); err != nil {
				log.WithError(err).Warn("cache write failed")
			}
		}
		if d.History != nil {
			resp.LastLoad = d.History.Last()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
