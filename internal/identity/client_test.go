package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInReturnsUserAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		assert.Equal(t, "Bearer app-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])

		_, _ = io.WriteString(w, `{"user":{"id":"u1","email":"a@b.c","full_name":"Ada"},"token":"tok-123"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	user, token, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "Ada", user.FullName)
}

func TestSignUpSurfacesServiceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"email already registered"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	_, err := c.SignUp(context.Background(), "a@b.c", "pw", "Ada")
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
}

func TestSignInFallbackMessageOnOpaqueBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "nope")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	_, _, err := c.SignIn(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	assert.Equal(t, "Sign in failed", err.Error())
}

func TestGetUserSendsSessionToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"user":{"id":"u1","email":"a@b.c"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	user, err := c.GetUser(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestUpdateProfileOmitsEmptyFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"full_name": "Grace"}, body)
		_, _ = io.WriteString(w, `{"user":{"id":"u1","full_name":"Grace"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	user, err := c.UpdateProfile(context.Background(), "tok", "Grace", "")
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.FullName)
}

func TestUploadAvatarReturnsPublicURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/storage/avatars/me.png", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)

		_, _ = io.WriteString(w, `{"url":"https://cdn.example.com/avatars/me.png"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	url, err := c.UploadAvatar(context.Background(), "tok-123", "me.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/me.png", url)
}

func TestUploadAvatarFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = io.WriteString(w, "too big")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	_, err := c.UploadAvatar(context.Background(), "tok", "me.png", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, "Avatar upload failed", err.Error())
}

func TestRequestPasswordReset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/password/reset", r.URL.Path)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-key", nil)
	assert.NoError(t, c.RequestPasswordReset(context.Background(), "a@b.c"))
}

func TestSessionStoreRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := NewSessionStore("reaxo-test")
	require.NoError(t, err)

	assert.Equal(t, "", store.Load())
	require.NoError(t, store.Save("tok-123"))
	assert.Equal(t, "tok-123", store.Load())
	require.NoError(t, store.Clear())
	assert.Equal(t, "", store.Load())
	require.NoError(t, store.Clear())
}
