package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-news-aggregator/stories-service/internal/service"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", fmt.Errorf("op: %w", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"not_found", fmt.Errorf("op: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"perm_denied", fmt.Errorf("op: %w", service.ErrPermissionDenied), http.StatusForbidden, "permission_denied"},
		{"conflict", fmt.Errorf("op: %w", service.ErrConflict), http.StatusConflict, "conflict"},
		{"upstream", fmt.Errorf("op: %w", service.ErrUpstream), http.StatusBadGateway, "upstream_failure"},
		{"unauth", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"internal", fmt.Errorf("op: %w", service.ErrInternal), http.StatusInternalServerError, "internal"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}
