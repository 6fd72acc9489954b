package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/courtside/courtside-data/internal/api/respond"
	"github.com/courtside/courtside-data/internal/cache"
	"github.com/courtside/courtside-data/internal/db"
	"github.com/courtside/courtside-data/internal/provider/bref"
)

const (
	defaultSort  = "Points_Per_Game"
	defaultLimit = 100
	maxLimit     = 500
)

// sortableColumns are the canonical column names accepted by the sort
// query parameter.
var sortableColumns = make(map[string]bool)

func init() {
	for _, name := range bref.CanonicalFieldNames() {
		sortableColumns[name] = true
	}
}

// ListPlayers returns rows from the stats table.
// @Summary List player stat lines
// @Description Returns per-game stat rows, optionally filtered by team and sorted by any canonical column.
// @Tags players
// @Produce json
// @Param team query string false "Filter by team code (e.g. BOS)"
// @Param sort query string false "Canonical column to sort by" default(Points_Per_Game)
// @Param order query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param limit query int false "Max rows (1-500)" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")

	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = defaultSort
	}
	if !sortableColumns[sort] {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SORT",
			fmt.Sprintf("%q is not a sortable column", sort))
		return
	}

	order := r.URL.Query().Get("order")
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ORDER", "order must be 'asc' or 'desc'")
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
			return
		}
		offset = n
	}
	if offset < 0 {
		offset = 0
	}

	ttl := h.cfg.CacheTTL
	cacheKey := fmt.Sprintf("players:%s:%s:%s:%d:%d", team, sort, order, limit, offset)

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	rows, err := h.store.ListPlayers(r.Context(), h.cfg.StatsTable, db.ListQuery{
		Team:   team,
		Sort:   sort,
		Desc:   order == "desc",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "QUERY_FAILED",
			"Stats table query failed; has the ingest run?")
		return
	}
	total, err := h.store.CountRows(r.Context(), h.cfg.StatsTable)
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "QUERY_FAILED",
			"Stats table query failed; has the ingest run?")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"players": rows,
		"count":   len(rows),
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, body, ttl)
	respond.WriteJSON(w, body, etag, ttl, false)
}

// GetPlayer returns all stat rows for one player name.
// @Summary Get a player's stat lines
// @Description Returns every row matching the player name exactly. Traded players have one row per team plus a combined total.
// @Tags players
// @Produce json
// @Param name path string true "Player name as it appears in the table"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/players/{name} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ttl := h.cfg.CacheTTL
	cacheKey := "player:" + name

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	rows, err := h.store.PlayerRows(r.Context(), h.cfg.StatsTable, name)
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "QUERY_FAILED",
			"Stats table query failed; has the ingest run?")
		return
	}
	if len(rows) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No stat lines for player %q", name))
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"player": name,
		"rows":   rows,
		"count":  len(rows),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, body, ttl)
	respond.WriteJSON(w, body, etag, ttl, false)
}

// GetMeta returns the stats table's shape and provenance.
// @Summary Stats table metadata
// @Description Returns the destination table's columns, row count, and the season the data was scraped for.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/meta [get]
func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	ttl := h.cfg.CacheTTL
	cacheKey := "meta:" + h.cfg.StatsTable

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	columns, err := h.store.TableColumns(r.Context(), h.cfg.StatsTable)
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "QUERY_FAILED", "Column lookup failed")
		return
	}
	if len(columns) == 0 {
		respond.WriteError(w, http.StatusNotFound, "TABLE_NOT_FOUND",
			fmt.Sprintf("Table %q does not exist; run the ingest first", h.cfg.StatsTable))
		return
	}
	count, err := h.store.CountRows(r.Context(), h.cfg.StatsTable)
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "QUERY_FAILED", "Row count failed")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"table":        h.cfg.StatsTable,
		"row_count":    count,
		"columns":      columns,
		"column_count": len(columns),
		"season":       h.cfg.Season,
		"source":       "basketball-reference.com",
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, body, ttl)
	respond.WriteJSON(w, body, etag, ttl, false)
}
