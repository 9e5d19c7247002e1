package http

import (
	"net/http"

	"github.com/ShauryaRahlon/Travel-Delite/internal/cache"
)

// CacheInspector exposes cache metadata without the cached values.
type CacheInspector interface {
	CacheStats() []cache.EntryStats
}

// HandleCacheStats returns an HTTP handler reporting server cache entries.
func HandleCacheStats(src CacheInspector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		stats := src.CacheStats()
		resp := cacheStatsResponse{
			Size:    len(stats),
			Keys:    make([]string, 0, len(stats)),
			Entries: make([]cacheEntryResponse, 0, len(stats)),
		}
		for _, s := range stats {
			resp.Keys = append(resp.Keys, s.Key)
			resp.Entries = append(resp.Entries, cacheEntryResponse{
				Key:     s.Key,
				AgeMS:   s.Age.Milliseconds(),
				TTLMS:   s.TTL.Milliseconds(),
				Expired: s.Expired,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type cacheStatsResponse struct {
	Size    int                  `json:"size"`
	Keys    []string             `json:"keys"`
	Entries []cacheEntryResponse `json:"entries"`
}

type cacheEntryResponse struct {
	Key     string `json:"key"`
	AgeMS   int64  `json:"ageMs"`
	TTLMS   int64  `json:"ttlMs"`
	Expired bool   `json:"expired"`
}
