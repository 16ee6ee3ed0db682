//go:build integration

package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/aitrainer/pkg/client"
)

func (s *IntegrationTestSuite) TestCalculators() {
	ctx := context.Background()
	c := s.newClient()

	bmi, err := c.BMI(ctx, client.BMIRequest{Weight: 70, WeightUnit: "kg", Height: 175, HeightUnit: "cm"})
	s.Require().NoError(err)
	s.InDelta(22.86, bmi.BMI, 0.001)
	s.Equal("Normal weight", bmi.Category)

	bmi, err = c.BMI(ctx, client.BMIRequest{Weight: 45, WeightUnit: "kg", Height: 160, HeightUnit: "cm"})
	s.Require().NoError(err)
	s.InDelta(17.58, bmi.BMI, 0.001)
	s.Equal("Underweight", bmi.Category)

	bmr, err := c.BMR(ctx, client.BMRRequest{Age: 30, Gender: "male", Weight: 70, WeightUnit: "kg", Height: 175, HeightUnit: "cm"})
	s.Require().NoError(err)
	s.Equal(1649, bmr.BMR)

	bmr, err = c.BMR(ctx, client.BMRRequest{Age: 30, Gender: "female", Weight: 70, WeightUnit: "kg", Height: 175, HeightUnit: "cm"})
	s.Require().NoError(err)
	s.Equal(1483, bmr.BMR)

	_, err = c.BMI(ctx, client.BMIRequest{Weight: 0, WeightUnit: "kg", Height: 175, HeightUnit: "cm"})
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
}

func (s *IntegrationTestSuite) TestContactWithoutMailServer() {
	ctx := context.Background()
	c := s.newClient()

	_, err := c.Contact(ctx, client.ContactMessage{Name: "Ana", Email: "not-an-email", Message: "hi"})
	var apiErr *client.APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("email is not valid", apiErr.Message)

	_, err = c.Contact(ctx, client.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "hi"})
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusInternalServerError, apiErr.StatusCode)
	s.Equal("Failed to send email", apiErr.Message)
}

func (s *IntegrationTestSuite) TestVersionAndQuote() {
	ctx := context.Background()
	c := s.newClient()

	version, err := c.Version(ctx)
	s.Require().NoError(err)
	s.Equal("test-version-info", version)

	resp, err := http.Get(serverEndpoint + "/quote/random")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var quote struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&quote))
	s.NotEmpty(quote.Text)
}
