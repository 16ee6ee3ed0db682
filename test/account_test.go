//go:build integration

package test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/aitrainer/pkg/client"
)

func (s *IntegrationTestSuite) TestSignupAndLogin() {
	ctx := context.Background()
	c := s.newClient()
	email := strings.ToLower(gofakeit.Email())

	msg, err := c.Signup(ctx, client.SignupRequest{Email: email, Password: "pass-1"})
	s.Require().NoError(err)
	s.Equal("User created successfully", msg)

	_, err = c.Signup(ctx, client.SignupRequest{Email: email, Password: "pass-2"})
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal("Email already registered", apiErr.Message)

	err = c.Login(ctx, email, "wrong")
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("Invalid credentials", apiErr.Message)

	s.Require().NoError(c.Login(ctx, email, "pass-1"))
	token, err := c.Tokens().Token()
	s.Require().NoError(err)
	s.NotEmpty(token)

	me, err := c.Me(ctx)
	s.Require().NoError(err)
	s.Equal(email, me.Email)
	// local signups get no country from the ip lookup
	s.Nil(me.Country)
}

func (s *IntegrationTestSuite) TestProfileUpdateAndPassword() {
	ctx := context.Background()
	email := strings.ToLower(gofakeit.Email())
	c := s.newLoggedInClient(ctx, email)

	firstName := gofakeit.FirstName()
	phone := gofakeit.Phone()
	updated, err := c.UpdateMe(ctx, client.ProfileUpdate{FirstName: &firstName, Phone: &phone})
	s.Require().NoError(err)
	s.Require().NotNil(updated.FirstName)
	s.Equal(firstName, *updated.FirstName)
	s.Require().NotNil(updated.Country)
	s.Equal("Serbia", *updated.Country)

	err = c.ChangePassword(ctx, client.ChangePasswordRequest{
		OldPassword: "secret-pass", NewPassword: "a", ConfirmPassword: "b",
	})
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("New passwords do not match", apiErr.Message)

	err = c.ChangePassword(ctx, client.ChangePasswordRequest{
		OldPassword: "not-it", NewPassword: "new-pass", ConfirmPassword: "new-pass",
	})
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("Old password is incorrect", apiErr.Message)

	s.Require().NoError(c.ChangePassword(ctx, client.ChangePasswordRequest{
		OldPassword: "secret-pass", NewPassword: "new-pass", ConfirmPassword: "new-pass",
	}))

	other := s.newClient()
	s.Error(other.Login(ctx, email, "secret-pass"))
	s.NoError(other.Login(ctx, email, "new-pass"))
}

func (s *IntegrationTestSuite) TestLogoutRevokesToken() {
	ctx := context.Background()
	c := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))
	token, err := c.Tokens().Token()
	s.Require().NoError(err)

	s.Require().NoError(c.Logout(ctx))
	token2, err := c.Tokens().Token()
	s.Require().NoError(err)
	s.Empty(token2)

	// reusing the old token fails and the client drops it again
	s.Require().NoError(c.Tokens().Save(token))
	_, err = c.Me(ctx)
	s.ErrorIs(err, client.ErrUnauthorized)
	token3, err := c.Tokens().Token()
	s.Require().NoError(err)
	s.Empty(token3)
}

func (s *IntegrationTestSuite) TestProtectedRoutesNeedToken() {
	ctx := context.Background()
	c := s.newClient()

	_, err := c.Me(ctx)
	s.ErrorIs(err, client.ErrUnauthorized)
	_, err = c.Workouts(ctx)
	s.ErrorIs(err, client.ErrUnauthorized)
	_, err = c.Diets(ctx)
	s.ErrorIs(err, client.ErrUnauthorized)
}

func (s *IntegrationTestSuite) TestProfileImageUpload() {
	ctx := context.Background()
	c := s.newLoggedInClient(ctx, strings.ToLower(gofakeit.Email()))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))

	user, err := c.UploadProfileImage(ctx, "me.png", &buf)
	s.Require().NoError(err)
	s.Require().NotNil(user.ProfileImage)
	s.True(strings.HasPrefix(*user.ProfileImage, "/uploads/"), *user.ProfileImage)

	resp, err := http.Get(serverEndpoint + *user.ProfileImage)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	_, err = c.UploadProfileImage(ctx, "notes.txt", strings.NewReader("not an image"))
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
}

func (s *IntegrationTestSuite) TestAdminUsers() {
	ctx := context.Background()
	email := strings.ToLower(gofakeit.Email())
	c := s.newLoggedInClient(ctx, email)

	_, err := c.AdminUsers(ctx)
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusForbidden, apiErr.StatusCode)

	_, err = s.DB.ExecContext(ctx, `UPDATE users SET role = 'admin' WHERE email = $1`, email)
	s.Require().NoError(err)

	users, err := c.AdminUsers(ctx)
	s.Require().NoError(err)
	found := false
	for _, u := range users {
		if u.Email == email {
			found = true
			s.Equal("admin", u.Role)
		}
	}
	s.True(found)
}
