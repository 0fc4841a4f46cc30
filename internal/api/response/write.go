package response

import (
	"encoding/json"
	"net/http"
)

// noStore keeps intermediaries from caching API responses; a cached roster
// would defeat the re-fetch that confirms a check-in
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

// JSON writes an uncacheable JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	noStore(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent acknowledges a mutation with 204 No Content
func NoContent(w http.ResponseWriter) {
	noStore(w)
	w.WriteHeader(http.StatusNoContent)
}
