package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qaforum/qaforum/backend/api/internal/models"
)

const defaultLimit = 10

// Page is the envelope returned by every list endpoint.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Limit int64 `json:"limit"`
	Skip  int64 `json:"skip"`
	Count int64 `json:"count"`
}

// parsePage reads limit and skip from the query string. Missing, non-numeric
// or zero limit falls back to 10; missing, non-numeric or negative skip to 0.
func parsePage(c *gin.Context) models.ListOptions {
	opts := models.ListOptions{Limit: defaultLimit}
	if n, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && n > 0 {
		opts.Limit = n
	}
	if n, err := strconv.ParseInt(c.Query("skip"), 10, 64); err == nil && n > 0 {
		opts.Skip = n
	}
	return opts
}

func newPage[T any](data []T, opts models.ListOptions, count int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Limit: opts.Limit, Skip: opts.Skip, Count: count}
}
