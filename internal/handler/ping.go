// File: internal/handler/ping.go
// Package handler holds the HTTP handlers that do not belong to a feature
// area of their own.
package handler

import (
	"net/http"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/database"
	"quantedgeb/internal/dto"

	"github.com/labstack/echo/v4"
)

// PingHandler reports service health, including both backing stores.
// @Summary     Health check
// @Description Pings Postgres and Redis and returns pong when both respond.
// @Tags        system
// @Produce     json
// @Success     200 {object} dto.AuthResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("database unavailable"))
		}
		if err := rdb.Set(c.Request().Context(), "healthcheck", "ok", 0).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, dto.Error("cache unavailable"))
		}
		return c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "pong"})
	}
}
