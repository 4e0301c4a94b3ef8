package whop

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quantedgeb/internal/database"
	"quantedgeb/internal/middleware"
	"quantedgeb/internal/model"
	"quantedgeb/internal/service"
	"quantedgeb/internal/whop"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func newPostCtx(e *echo.Echo, body string, claims *service.CustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if claims != nil {
		ctx.Set(middleware.ContextUserKey, claims)
	}
	return ctx, rec
}

func TestVerifyHandler(t *testing.T) {
	claims := &service.CustomClaims{UserID: "u1", Email: "a@b.com"}

	// no claims in context
	e := echo.New()
	ctx, rec := newPostCtx(e, `{}`, nil)
	require.NoError(t, VerifyHandler(&database.FakeDB{}, &whop.FakeVerifier{})(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// bind error
	e = echo.New()
	e.Binder = errBinder{}
	ctx, rec = newPostCtx(e, "", claims)
	require.NoError(t, VerifyHandler(&database.FakeDB{}, &whop.FakeVerifier{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = errValidator{}
	ctx, rec = newPostCtx(e, `{}`, claims)
	require.NoError(t, VerifyHandler(&database.FakeDB{}, &whop.FakeVerifier{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email is required")

	// not a subscriber
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newPostCtx(e, `{"email":"a@b.com"}`, claims)
	verifier := &whop.FakeVerifier{VerifyEmailFn: func(context.Context, string) (*whop.Membership, error) {
		return nil, whop.ErrNoValidMembership
	}}
	require.NoError(t, VerifyHandler(&database.FakeDB{}, verifier)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "not found in Whop subscriptions")

	// upstream failure
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newPostCtx(e, `{"email":"a@b.com"}`, claims)
	verifier = &whop.FakeVerifier{VerifyEmailFn: func(context.Context, string) (*whop.Membership, error) {
		return nil, errors.New("upstream 500")
	}}
	require.NoError(t, VerifyHandler(&database.FakeDB{}, verifier)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	okVerifier := &whop.FakeVerifier{VerifyEmailFn: func(_ context.Context, email string) (*whop.Membership, error) {
		require.Equal(t, "sub@b.com", email)
		return &whop.Membership{ID: "mem_1", Valid: true, Status: "completed"}, nil
	}}

	// user row vanished
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newPostCtx(e, `{"email":"Sub@B.com"}`, claims)
	db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
		return userRow{err: pgx.ErrNoRows}
	}}
	require.NoError(t, VerifyHandler(db, okVerifier)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// success: email lowercased before the lookup, account flips to premium
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newPostCtx(e, `{"email":"Sub@B.com"}`, claims)
	db = &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		require.Equal(t, "u1", args[2])
		return userRow{u: model.User{ID: "u1", WhopVerified: true, Tier: model.TierPremium}}
	}}
	require.NoError(t, VerifyHandler(db, okVerifier)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "premium access")
	require.Contains(t, rec.Body.String(), `"whopVerified":true`)
}
