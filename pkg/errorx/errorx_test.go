package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWithMsgKeepsCode(t *testing.T) {
	if ErrReactionExist.Code != CodeConflict {
		t.Fatalf("code = %d", ErrReactionExist.Code)
	}
	if !errors.Is(ErrReactionExist, ErrConflict) {
		t.Fatal("derived error should match its base by code")
	}
	wrapped := fmt.Errorf("outer: %w", ErrPostNotExist)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped derived error should match ErrNotFound")
	}
	if errors.Is(ErrPostNotExist, ErrConflict) {
		t.Fatal("different codes must not match")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[*CodeError]int{
		ErrInvalidParam:      http.StatusBadRequest,
		ErrNeedLogin:         http.StatusUnauthorized,
		ErrInvalidPassword:   http.StatusUnauthorized,
		ErrEmailNotConfirmed: http.StatusForbidden,
		ErrAdminEditContent:  http.StatusForbidden,
		ErrCommentNotExist:   http.StatusNotFound,
		ErrFavoriteExist:     http.StatusConflict,
		ErrUserExist:         http.StatusConflict,
		ErrRateLimitExceeded: http.StatusTooManyRequests,
		ErrServerBusy:        http.StatusInternalServerError,
	}
	for e, want := range cases {
		if got := HTTPStatus(e.Code); got != want {
			t.Errorf("%q: status %d, want %d", e.Msg, got, want)
		}
	}
}
