// Package server implements a development backend speaking the PostgREST
// subset the planner client uses: filtered selects with embedded
// tag/project name joins, id-keyed merge-duplicates upserts and filtered
// deletes over the four planner tables. It exists so the client can be
// developed and integration-tested without a hosted Supabase project.
package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
)

// Server is the dev sync backend.
type Server struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	apiKey string // empty disables the apikey check
	echo   *echo.Echo
}

// New opens the storage and wires the routes. A dsn starting with
// postgres:// selects the postgres driver; anything else is treated as a
// sqlite file path.
func New(dsn, apiKey string) (*Server, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driverName(driver), dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{db: db, driver: driver, apiKey: apiKey}

	if driver == "sqlite" {
		// The pragma is per-connection; a single pooled connection keeps
		// it in force and sidesteps sqlite write contention.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	s.setupEcho()
	return s, nil
}

func driverName(driver string) string {
	if driver == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			err := next(c)
			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))
			return err
		}
	})
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	rest := e.Group("/rest/v1")
	rest.Use(s.apiKeyMiddleware)
	for _, table := range tableOrder {
		t := table
		rest.GET("/"+t, func(c echo.Context) error { return s.handleSelect(c, t) })
		rest.POST("/"+t, func(c echo.Context) error { return s.handleUpsert(c, t) })
		rest.DELETE("/"+t, func(c echo.Context) error { return s.handleDelete(c, t) })
	}

	s.echo = e
}

// apiKeyMiddleware rejects requests without the configured anon key.
func (s *Server) apiKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.apiKey == "" {
			return next(c)
		}
		key := c.Request().Header.Get("apikey")
		if key != s.apiKey {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
		}
		return next(c)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Handler exposes the echo instance for httptest-based integration tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on the given address until the listener fails.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

// Close closes the database connection.
func (s *Server) Close() error { return s.db.Close() }

// rebind converts ? placeholders to $1..$n for postgres.
func (s *Server) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
