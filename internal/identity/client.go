// Package identity is a thin adapter over the hosted auth/profile service.
// The service is a collaborator, not part of this system; the client treats
// it as an opaque REST surface and stores only the opaque session token.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/reaxo/reaxo/internal/httpclient"
)

// User is the profile shape the auth service returns.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"created_at"`
}

type Client struct {
	baseURL string
	appKey  string
	client  httpclient.HTTPClient
}

func NewClient(baseURL, appKey string, client httpclient.HTTPClient) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		appKey:  appKey,
		client:  client,
	}
}

type userPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// servedError is the service's error body: `{"message": "..."}`.
type servedError struct {
	Message string `json:"message"`
}

// asUserError turns a transport or upstream failure into the string shown
// in the auth form, preferring the service's own message.
func asUserError(err error, fallback string) error {
	var upstream *httpclient.UpstreamError
	if errors.As(err, &upstream) {
		var body servedError
		if jsonErr := json.Unmarshal(upstream.Body, &body); jsonErr == nil && body.Message != "" {
			return errors.New(body.Message)
		}
		return errors.New(fallback)
	}
	return err
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*User, error) {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.appKey}

	var payload userPayload
	err := httpclient.SendRequest(ctx, c.client, http.MethodPost, c.baseURL+"/api/auth/signup", headers, body, &payload)
	if err != nil {
		return nil, asUserError(err, "Sign up failed")
	}
	return payload.User, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*User, string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.appKey}

	var payload userPayload
	err := httpclient.SendRequest(ctx, c.client, http.MethodPost, c.baseURL+"/api/auth/signin", headers, body, &payload)
	if err != nil {
		return nil, "", asUserError(err, "Sign in failed")
	}
	return payload.User, payload.Token, nil
}

func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}

	var payload userPayload
	err := httpclient.SendRequest(ctx, c.client, http.MethodGet, c.baseURL+"/api/auth/me", headers, nil, &payload)
	if err != nil {
		return nil, asUserError(err, "Failed to fetch user")
	}
	return payload.User, nil
}

// UpdateProfile changes the display name and/or avatar URL. Empty arguments
// leave the corresponding field untouched.
func (c *Client) UpdateProfile(ctx context.Context, token, fullName, avatarURL string) (*User, error) {
	body := map[string]string{}
	if fullName != "" {
		body["full_name"] = fullName
	}
	if avatarURL != "" {
		body["avatar_url"] = avatarURL
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	var payload userPayload
	err := httpclient.SendRequest(ctx, c.client, http.MethodPut, c.baseURL+"/api/auth/profile", headers, body, &payload)
	if err != nil {
		return nil, asUserError(err, "Profile update failed")
	}
	return payload.User, nil
}

// UploadAvatar stores an avatar image in the service's avatars bucket and
// returns its public URL, ready to pass to UpdateProfile. The bytes go up
// raw; the service keys the object on the filename.
func (c *Client) UploadAvatar(ctx context.Context, token, filename string, data []byte) (string, error) {
	url := c.baseURL + "/api/storage/avatars/" + filename
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", asUserError(&httpclient.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			URL:        url,
		}, "Avatar upload failed")
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.URL, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	headers := map[string]string{"Authorization": "Bearer " + c.appKey}

	err := httpclient.SendRequest(ctx, c.client, http.MethodPost, c.baseURL+"/api/auth/password/reset", headers, body, nil)
	if err != nil {
		return asUserError(err, fmt.Sprintf("Could not send reset link to %s", email))
	}
	return nil
}
