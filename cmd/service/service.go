// File: cmd/service/service.go
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/database"
	"quantedgeb/internal/mail"
	"quantedgeb/internal/router"
	"quantedgeb/internal/scheduler"
	"quantedgeb/internal/whop"
	"quantedgeb/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "quantedgeb/docs" // swag generated docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	newSchedulerFn  = scheduler.New
	newWhopVerifier = func(cfg whop.Config) whop.Verifier { return whop.NewClient(cfg, nil) }
	newMailerFn     = func(apiKey, from string) mail.Mailer { return mail.NewResend(apiKey, from) }
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func run() error {
	// a missing .env is fine in production
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return fmt.Errorf("REDIS_ADDR not set")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return fmt.Errorf("REDIS_DB not set")
	}
	redisIndex, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %v", err)
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	if redisPassword == "" {
		return fmt.Errorf("REDIS_PASSWORD not set")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET not set")
	}

	whopCompanyID := os.Getenv("WHOP_COMPANY_ID")
	if whopCompanyID == "" {
		return fmt.Errorf("WHOP_COMPANY_ID not set")
	}

	workerCount := 1
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return fmt.Errorf("invalid WORKER_COUNT: %v", err)
		}
		workerCount = c
	}

	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(redisAddr, redisPassword, redisIndex)
	if err != nil {
		return fmt.Errorf("redis connection failed: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("migration failed: %v", err)
	}

	verifier := newWhopVerifier(whop.Config{
		APIKey:       os.Getenv("WHOP_API_KEY"),
		AppID:        os.Getenv("WHOP_APP_ID"),
		ClientSecret: os.Getenv("WHOP_CLIENT_SECRET"),
		CompanyID:    whopCompanyID,
	})

	// no Resend key means email features answer with a configuration error
	var mailer mail.Mailer
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		mailer = newMailerFn(apiKey, os.Getenv("EMAIL_FROM"))
	}

	wp := newWorkerPool(workerCount)
	defer wp.Stop()

	sched, err := newSchedulerFn(db, os.Getenv("SESSION_PURGE_SCHEDULE"))
	if err != nil {
		return fmt.Errorf("scheduler setup failed: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, verifier, mailer, wp)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, ":8080")
}
