package whop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func membershipJSON(id, status, companyID string, valid bool) map[string]any {
	return map[string]any{
		"id":     id,
		"valid":  valid,
		"status": status,
		"product": map[string]any{
			"id":         "prod_1",
			"company_id": companyID,
		},
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		APIKey:       "app-key",
		AppID:        "app_123",
		ClientSecret: "cs_456",
		CompanyID:    "biz_789",
		BaseURL:      srv.URL,
		AuthBaseURL:  srv.URL,
	}, srv.Client())
	return c, srv
}

func TestAuthorizationURL(t *testing.T) {
	c := NewClient(Config{AppID: "app_123"}, nil)
	raw := c.AuthorizationURL("https://site/auth/whop-callback", "state-1")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "https://whop.com", u.Scheme+"://"+u.Host)
	require.Equal(t, "/oauth/", u.Path)
	q := u.Query()
	require.Equal(t, "app_123", q.Get("client_id"))
	require.Equal(t, "https://site/auth/whop-callback", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "state-1", q.Get("state"))
	require.Equal(t, "read_user read_memberships", q.Get("scope"))
}

func TestVerifyCode(t *testing.T) {
	t.Run("valid membership", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "code-1", r.PostForm.Get("code"))
			require.Equal(t, "app_123", r.PostForm.Get("client_id"))
			require.Equal(t, "cs_456", r.PostForm.Get("client_secret"))
			json.NewEncoder(w).Encode(map[string]string{"access_token": "at-1"})
		})
		mux.HandleFunc("/api/v2/me/memberships", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"data": []any{
				membershipJSON("mem_0", "expired", "biz_789", false),
				membershipJSON("mem_1", "completed", "biz_789", true),
			}})
		})
		c, _ := newTestClient(t, mux)

		m, err := c.VerifyCode(context.Background(), "code-1", "https://site/cb")
		require.NoError(t, err)
		require.Equal(t, "mem_1", m.ID)
	})

	t.Run("membership for other company rejected", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "at-1"})
		})
		mux.HandleFunc("/api/v2/me/memberships", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"data": []any{
				membershipJSON("mem_1", "completed", "biz_other", true),
			}})
		})
		c, _ := newTestClient(t, mux)

		_, err := c.VerifyCode(context.Background(), "code-1", "https://site/cb")
		require.ErrorIs(t, err, ErrNoValidMembership)
	})

	t.Run("exchange failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad code", http.StatusBadRequest)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.VerifyCode(context.Background(), "bad", "https://site/cb")
		require.Error(t, err)
	})

	t.Run("empty access token", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		})
		c, _ := newTestClient(t, mux)

		_, err := c.VerifyCode(context.Background(), "code-1", "https://site/cb")
		require.Error(t, err)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Run("subscriber", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/memberships", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer app-key", r.Header.Get("Authorization"))
			require.Equal(t, "premium@quantedgeb.com", r.URL.Query().Get("email"))
			require.Equal(t, "biz_789", r.URL.Query().Get("company_id"))
			json.NewEncoder(w).Encode(map[string]any{"data": []any{
				membershipJSON("mem_9", "completed", "biz_789", true),
			}})
		})
		c, _ := newTestClient(t, mux)

		m, err := c.VerifyEmail(context.Background(), "premium@quantedgeb.com")
		require.NoError(t, err)
		require.Equal(t, "mem_9", m.ID)
	})

	t.Run("not a subscriber", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/memberships", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		})
		c, _ := newTestClient(t, mux)

		_, err := c.VerifyEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, ErrNoValidMembership)
	})

	t.Run("upstream error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v2/memberships", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.VerifyEmail(context.Background(), "a@b.com")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNoValidMembership)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/me/memberships", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{
			membershipJSON("mem_1", "completed", "biz_789", true),
			membershipJSON("mem_2", "completed", "biz_789", true),
		}})
	})
	c, _ := newTestClient(t, mux)

	m, err := c.VerifyAccessToken(context.Background(), "at-1", "mem_2")
	require.NoError(t, err)
	require.Equal(t, "mem_2", m.ID)

	// pinned id not present
	_, err = c.VerifyAccessToken(context.Background(), "at-1", "mem_404")
	require.ErrorIs(t, err, ErrNoValidMembership)
}

func TestUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"id": "user_1", "email": "a@b.com", "username": "alice"})
	})
	c, _ := newTestClient(t, mux)

	u, err := c.UserInfo(context.Background(), "at-1")
	require.NoError(t, err)
	require.Equal(t, "user_1", u.ID)
	require.Equal(t, "alice", u.Username)
}
