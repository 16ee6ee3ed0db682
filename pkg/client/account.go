package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var resp MessageResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login sends the credentials as a form and keeps the returned token in the token store.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp TokenResponse
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &resp); err != nil {
		return err
	}

	if resp.AccessToken == "" {
		return fmt.Errorf("login: empty access token in response")
	}
	return c.tokens.Save(resp.AccessToken)
}

// Logout revokes the session on the API. The local token is cleared even when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, path: "/logout"}, nil)
	if clearErr := c.tokens.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.sendJSON(ctx, http.MethodPut, "/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/me/password", req, nil)
}

// UploadProfileImage sends the image as the multipart "file" field.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, image io.Reader) (*User, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var user User
	if err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/me/profile-image",
		body:        &body,
		contentType: mw.FormDataContentType(),
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.getJSON(ctx, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
