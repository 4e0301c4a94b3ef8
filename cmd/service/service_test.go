package main

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"quantedgeb/internal/cache"
	"quantedgeb/internal/database"
	"quantedgeb/internal/mail"
	"quantedgeb/internal/scheduler"
	"quantedgeb/internal/whop"
	"quantedgeb/internal/worker"
)

func restoreGlobals() {
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool = worker.NewPool
	newSchedulerFn = scheduler.New
	newWhopVerifier = func(cfg whop.Config) whop.Verifier { return whop.NewClient(cfg, nil) }
	newMailerFn = func(apiKey, from string) mail.Mailer { return mail.NewResend(apiKey, from) }
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("REDIS_ADDR", "127")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WHOP_COMPANY_ID", "biz_1")
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	var gotCfg whop.Config
	newWhopVerifier = func(cfg whop.Config) whop.Verifier {
		gotCfg = cfg
		return &whop.FakeVerifier{}
	}
	newMailerFn = func(apiKey, from string) mail.Mailer {
		called["mailer"] = true
		require.Equal(t, "re_key", apiKey)
		return &mail.FakeMailer{}
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":8080", addr)
		return nil
	}

	setRequiredEnv(t)
	t.Setenv("RESEND_API_KEY", "re_key")
	t.Setenv("WORKER_COUNT", "2")

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["mailer"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
	require.Equal(t, "biz_1", gotCfg.CompanyID)
}

func TestRunWithoutMailer(t *testing.T) {
	t.Cleanup(restoreGlobals)
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	newMailerFn = func(string, string) mail.Mailer {
		t.Fatal("mailer should not be constructed without RESEND_API_KEY")
		return nil
	}
	startServer = func(*echo.Echo, string) error { return nil }

	setRequiredEnv(t)
	t.Setenv("RESEND_API_KEY", "")
	require.NoError(t, run())
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("DATABASE_URL", "")
	require.Error(t, run())
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("REDIS_ADDR", "")
	require.Error(t, run())
	t.Setenv("REDIS_ADDR", "addr")
	t.Setenv("REDIS_DB", "")
	require.Error(t, run())

	t.Setenv("REDIS_DB", "bad")
	require.Error(t, run())
	t.Setenv("REDIS_DB", "0")
	t.Setenv("REDIS_PASSWORD", "")
	require.Error(t, run())

	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "")
	require.Error(t, run())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("WHOP_COMPANY_ID", "")
	require.Error(t, run())

	t.Setenv("WHOP_COMPANY_ID", "biz_1")
	t.Setenv("WORKER_COUNT", "bad")
	require.Error(t, run())

	t.Setenv("WORKER_COUNT", "1")
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())

	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	t.Setenv("SESSION_PURGE_SCHEDULE", "not a cron spec")
	require.Error(t, run())

	t.Setenv("SESSION_PURGE_SCHEDULE", "")
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	startServer = func(*echo.Echo, string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	setRequiredEnv(t)
	main()
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	setRequiredEnv(t)
	main()
	require.Equal(t, 1, exitCode)
}
