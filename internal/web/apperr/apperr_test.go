package apperr_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/authgate-io/authgate/internal/web/apperr"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal("jwks fetch failed", cause)

	if !errors.Is(err, cause) {
		t.Error("Internal() must wrap its cause")
	}

	if err.Error() != "jwks fetch failed: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestStatusByKind(t *testing.T) {
	testCases := []struct {
		err  *apperr.Error
		want int
	}{
		{apperr.Internal("boom", nil), fiber.StatusInternalServerError},
		{apperr.Unauthenticated("authentication required"), fiber.StatusUnauthorized},
		{apperr.Forbidden("not allowed"), fiber.StatusForbidden},
	}

	for _, tc := range testCases {
		if got := tc.err.Status(); got != tc.want {
			t.Errorf("Status() = %d, want %d", got, tc.want)
		}
	}
}

func TestErrorHandlerMasksInternalMessages(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})

	app.Get("/internal", func(_ *fiber.Ctx) error {
		return apperr.Internal("provider unreachable at 10.0.0.5", nil)
	})

	app.Get("/unauth", func(_ *fiber.Ctx) error {
		return apperr.Unauthenticated("authentication failed")
	})

	app.Get("/plain", func(_ *fiber.Ctx) error {
		return errors.New("raw database error")
	})

	testCases := []struct {
		target     string
		wantStatus int
		wantError  string
	}{
		{"/internal", fiber.StatusInternalServerError, "internal server error"},
		{"/unauth", fiber.StatusUnauthorized, "authentication failed"},
		{"/plain", fiber.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.target, nil))
			if err != nil {
				t.Fatalf("app.Test returned error: %v", err)
			}

			if resp.StatusCode != tc.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}

			var body struct {
				Error string `json:"error"`
			}

			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}

			if body.Error != tc.wantError {
				t.Errorf("error = %q, want %q", body.Error, tc.wantError)
			}
		})
	}
}
