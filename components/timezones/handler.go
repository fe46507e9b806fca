package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type optionsResponse struct {
	Data []Option `json:"data"`
}

// NewHandler serves GET and HEAD zone searches as {"data":[...]}.
func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		zones := opts.Zones
		if zones == nil {
			loaded, err := DefaultZones()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			zones = loaded
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := SearchOptions(zones, query, limit, opts, opts.Clock.Now())
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
