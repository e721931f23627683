package server

import (
	stdhttp "net/http"
	"testing"

	ierrors "xinyuan_tech/entitlement-service/internal/errors"
)

func TestMapErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"quota exceeded", ierrors.ErrCodeQuotaExceeded, stdhttp.StatusTooManyRequests},
		{"reservation conflict", ierrors.ErrCodeQuotaReservationConflict, stdhttp.StatusConflict},
		{"concurrent update conflict", ierrors.ErrCodeConcurrentUpdateConflict, stdhttp.StatusConflict},
		{"user not found", ierrors.ErrCodeUserNotFound, stdhttp.StatusNotFound},
		{"other business code", ierrors.ErrCodeUnknownFeature, stdhttp.StatusBadRequest},
		{"plain http code passes through", 401, 401},
		{"unknown code", 990001, stdhttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorStatus(tt.code); got != tt.want {
				t.Errorf("mapErrorStatus(%d) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}
