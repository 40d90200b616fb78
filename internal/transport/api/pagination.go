package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type Meta struct {
	Total      int64 `json:"total"`
	Page       uint  `json:"page"`
	Limit      uint  `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

type ListResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// pageParams читает page/limit из query. Невалидные значения молча заменяются
// дефолтами, limit ограничен сверху.
func pageParams(c *gin.Context) (uint, uint) {
	page := parseUintParam(c.Query("page"), defaultPage)
	limit := parseUintParam(c.Query("limit"), defaultLimit)
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func parseUintParam(raw string, fallback uint) uint {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return uint(value)
}

func newListResponse(data any, total int64, page, limit uint) ListResponse {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return ListResponse{
		Data: data,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

// idParam парсит числовой path-параметр; 0 при ошибке.
func idParam(c *gin.Context, name string) int64 {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
