package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"usof/pkg/errorx"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := InitTrans("en"); err != nil {
		fmt.Printf("InitTrans: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ResponseData {
	t.Helper()
	var resp ResponseData
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
		wantMsg  string
	}{
		{"code error", errorx.ErrPostNotExist, http.StatusNotFound, errorx.CodeNotFound, "帖子不存在"},
		{"wrapped code error", fmt.Errorf("load: %w", errorx.ErrForbidden), http.StatusForbidden, errorx.CodeForbidden, "没有权限"},
		{"conflict", errorx.ErrReactionExist, http.StatusConflict, errorx.CodeConflict, errorx.ErrReactionExist.Msg},
		{"token expired", errorx.ErrTokenExpired, http.StatusBadRequest, errorx.CodeInvalidParam, errorx.ErrTokenExpired.Msg},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, errorx.CodeServerBusy, "服务繁忙"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			HandleError(c, tt.err)

			if w.Code != tt.wantHTTP {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantHTTP)
			}
			resp := decode(t, w)
			if resp.Code != tt.wantCode || resp.Msg != tt.wantMsg {
				t.Fatalf("resp = %+v", resp)
			}
			if resp.Data != nil {
				t.Fatalf("error response should not carry data: %+v", resp.Data)
			}
		})
	}
}

func TestResponseCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ResponseCreated(c, gin.H{"id": "1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decode(t, w); resp.Code != errorx.CodeSuccess || resp.Msg != "success" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSignUpValidation(t *testing.T) {
	r := gin.New()
	r.POST("/register", SignUpHandler)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "password mismatch",
			body:       `{"login":"alice","password":"secret123","password_confirm":"secret124","full_name":"Alice A","email":"alice@example.com"}`,
			wantFields: []string{"password_confirm"},
		},
		{
			name:       "missing and malformed fields",
			body:       `{"login":"al","password":"secret123","password_confirm":"secret123","full_name":"Alice A","email":"not-an-email"}`,
			wantFields: []string{"login", "email"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body.String())
			}
			resp := decode(t, w)
			fields, ok := resp.Msg.(map[string]interface{})
			if !ok {
				t.Fatalf("msg should be a field map, got %T %v", resp.Msg, resp.Msg)
			}
			for _, f := range tt.wantFields {
				if _, ok := fields[f]; !ok {
					t.Errorf("missing message for %q in %v", f, fields)
				}
			}
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginHandler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decode(t, w); resp.Msg != errorx.ErrInvalidParam.Msg {
		t.Fatalf("msg = %v", resp.Msg)
	}
}

func TestParseIDAndViewer(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			ResponseError(c, errorx.ErrInvalidParam)
			return
		}
		c.Set(CtxUserIDKey, int64(7))
		c.Set(CtxUserRoleKey, "admin")
		v := GetViewer(c)
		ResponseSuccess(c, gin.H{"id": id, "viewer": v.UserID, "admin": v.IsAdmin()})
	})

	for _, path := range []string{"/things/abc", "/things/0", "/things/-3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	data := decode(t, w).Data.(map[string]interface{})
	if data["id"] != float64(42) || data["viewer"] != float64(7) || data["admin"] != true {
		t.Fatalf("data = %v", data)
	}
}
