package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/search"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// ErrorResponse represents an error payload
type ErrorResponse struct {
	Error   string `json:"error" example:"failed to search cities"`
	Details string `json:"details,omitempty"`
}

// PaginationInfo describes the window returned by a search
type PaginationInfo struct {
	Offset  int  `json:"offset" example:"0"`
	Limit   int  `json:"limit" example:"10"`
	Total   int  `json:"total" example:"132"`
	HasMore bool `json:"hasMore" example:"true"`
}

// SearchResponse is the ranked page returned by the cities endpoint
type SearchResponse struct {
	Data       []search.ScoredCity `json:"data"`
	Pagination PaginationInfo      `json:"pagination"`
}

// StatesResponse wraps the state list for one country
type StatesResponse struct {
	Data []types.State `json:"data"`
}

// handleSearchCities godoc
// @Summary Search cities
// @Description Rank cities matching a query by text relevance, population and proximity
// @Tags cities
// @Produce json
// @Param query query string true "Search text"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(10)
// @Param country_code query string false "Restrict to a 2-letter country code"
// @Param state_code query string false "Restrict to a state code"
// @Param useLocation query bool false "Resolve the client IP and boost nearby cities" default(false)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities [get]
func (app *App) handleSearchCities(c *gin.Context) {
	params := search.SearchParams{
		Query:       c.Query("query"),
		CountryCode: c.Query("country_code"),
		StateCode:   c.Query("state_code"),
		Offset:      parseIntQuery(c, "offset", 0),
		Limit:       parseIntQuery(c, "limit", 0),
	}

	if parseBoolQuery(c.Query("useLocation")) {
		origin := app.locationService.Resolve(c.Request.Context(), c.ClientIP())
		params.Origin = &origin
	}

	result, err := app.searchService.Search(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, search.ErrQueryRequired) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter is required"})
			return
		}
		app.logger.Error("city search failed", "error", err, "query", params.Query)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to search cities",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Data: result.Cities,
		Pagination: PaginationInfo{
			Offset:  result.Offset,
			Limit:   result.Limit,
			Total:   result.Total,
			HasMore: result.Offset+result.Limit < result.Total,
		},
	})
}

// handleGetFilters godoc
// @Summary List search filters
// @Description List every country and state available for narrowing a search
// @Tags cities
// @Produce json
// @Success 200 {object} filters.FilterOptions
// @Failure 500 {object} ErrorResponse
// @Router /cities/filters [get]
func (app *App) handleGetFilters(c *gin.Context) {
	opts, err := app.filterService.Filters(c.Request.Context())
	if err != nil {
		app.logger.Error("failed to load filter options", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to load filters",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, opts)
}

// handleGetStates godoc
// @Summary List states for a country
// @Description List the states of one country, identified by its 2-letter code
// @Tags cities
// @Produce json
// @Param countryCode path string true "2-letter country code"
// @Success 200 {object} StatesResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities/states/{countryCode} [get]
func (app *App) handleGetStates(c *gin.Context) {
	states, err := app.filterService.StatesForCountry(c.Request.Context(), c.Param("countryCode"))
	if err != nil {
		app.logger.Error("failed to load states", "error", err, "country_code", c.Param("countryCode"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "failed to load states",
			Details: err.Error(),
		})
		return
	}

	if states == nil {
		states = []types.State{}
	}
	c.JSON(http.StatusOK, StatesResponse{Data: states})
}

// parseIntQuery reads an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func parseIntQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// parseBoolQuery reads a boolean query parameter, treating anything
// unparsable as false.
func parseBoolQuery(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
