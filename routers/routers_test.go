package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"usof/controller"
	"usof/dao/mysql"
	"usof/dao/redis"
	"usof/logic"
	"usof/models"
	"usof/pkg/errorx"
	"usof/pkg/jwt"
	"usof/pkg/snowflake"
	"usof/settings"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	if err := snowflake.Init("2024-01-01", 1); err != nil {
		t.Fatalf("snowflake.Init: %v", err)
	}
	jwt.Init("router-secret", time.Hour, 24*time.Hour)

	err := mysql.Init(&settings.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:routers_%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("mysql.Init: %v", err)
	}
	t.Cleanup(mysql.Close)

	mr := miniredis.RunT(t)
	host, portStr, _ := net.SplitHostPort(mr.Addr())
	port, _ := strconv.Atoi(portStr)
	if err = redis.Init(&settings.RedisConfig{Host: host, Port: port, PoolSize: 2}); err != nil {
		t.Fatalf("redis.Init: %v", err)
	}
	t.Cleanup(redis.Close)

	if err = controller.InitTrans("en"); err != nil {
		t.Fatalf("InitTrans: %v", err)
	}
	return SetupRouter(gin.TestMode)
}

type client struct {
	t *testing.T
	r *gin.Engine
}

func (c client) do(method, path, token string, body interface{}) (int, controller.ResponseData) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	var resp controller.ResponseData
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		c.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, resp
}

func (c client) login(login string) string {
	c.t.Helper()
	status, resp := c.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"login":    login,
		"email":    login + "@example.com",
		"password": "secret123",
	})
	if status != http.StatusOK {
		c.t.Fatalf("login %s: status %d %+v", login, status, resp)
	}
	return resp.Data.(map[string]interface{})["access_token"].(string)
}

func createUser(t *testing.T, login, role string) {
	t.Helper()
	_, err := logic.CreateUser(t.Context(), &models.ParamUserCreate{
		Login:           login,
		Password:        "secret123",
		PasswordConfirm: "secret123",
		FullName:        login + " user",
		Email:           login + "@example.com",
		Role:            role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", login, err)
	}
}

func dataField(resp controller.ResponseData, key string) interface{} {
	m, _ := resp.Data.(map[string]interface{})
	return m[key]
}

func TestHealthAndNotFound(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}

	status, resp := client{t, r}.do(http.MethodGet, "/api/v1/nowhere", "", nil)
	if status != http.StatusNotFound || resp.Code != errorx.CodeNotFound {
		t.Fatalf("404 = %d %+v", status, resp)
	}
}

func TestForumFlow(t *testing.T) {
	r := setupRouter(t)
	c := client{t, r}
	createUser(t, "admin", models.RoleAdmin)
	createUser(t, "alice", models.RoleUser)
	adminToken := c.login("admin")
	aliceToken := c.login("alice")

	// 分类只有管理员能创建
	status, _ := c.do(http.MethodPost, "/api/v1/categories", aliceToken, gin.H{"title": "Go"})
	if status != http.StatusForbidden {
		t.Fatalf("user create category status = %d, want 403", status)
	}
	status, resp := c.do(http.MethodPost, "/api/v1/categories", adminToken, gin.H{"title": "Go", "description": "gophers"})
	if status != http.StatusCreated {
		t.Fatalf("create category = %d %+v", status, resp)
	}
	categoryID := dataField(resp, "id").(string)

	// 未登录不能发帖
	if status, _ = c.do(http.MethodPost, "/api/v1/posts", "", gin.H{"title": "t"}); status != http.StatusUnauthorized {
		t.Fatalf("anonymous create post status = %d, want 401", status)
	}
	status, resp = c.do(http.MethodPost, "/api/v1/posts", aliceToken, gin.H{
		"title":      "Hello forum",
		"content":    "**first** post",
		"categories": []string{categoryID},
	})
	if status != http.StatusCreated {
		t.Fatalf("create post = %d %+v", status, resp)
	}
	postID := dataField(resp, "id").(string)
	postPath := "/api/v1/posts/" + postID

	status, resp = c.do(http.MethodPost, postPath+"/like", adminToken, gin.H{"type": "like"})
	if status != http.StatusCreated {
		t.Fatalf("like = %d %+v", status, resp)
	}
	if got := dataField(resp, "author_rating"); got != float64(1) {
		t.Fatalf("author_rating = %v, want 1", got)
	}
	if status, _ = c.do(http.MethodPost, postPath+"/like", adminToken, gin.H{"type": "dislike"}); status != http.StatusConflict {
		t.Fatalf("second reaction status = %d, want 409", status)
	}
	if status, resp = c.do(http.MethodPut, postPath+"/like", adminToken, gin.H{"type": "dislike"}); status != http.StatusOK {
		t.Fatalf("switch = %d %+v", status, resp)
	}

	status, resp = c.do(http.MethodGet, postPath, "", nil)
	if status != http.StatusOK {
		t.Fatalf("get post = %d %+v", status, resp)
	}
	if dataField(resp, "likes_count") != float64(0) || dataField(resp, "dislikes_count") != float64(1) {
		t.Fatalf("counters = %v", resp.Data)
	}

	status, resp = c.do(http.MethodPost, postPath+"/comments", adminToken, gin.H{"content": "welcome"})
	if status != http.StatusCreated {
		t.Fatalf("comment = %d %+v", status, resp)
	}
	status, resp = c.do(http.MethodGet, postPath+"/comments", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list comments = %d", status)
	}
	if items, _ := resp.Data.([]interface{}); len(items) != 1 {
		t.Fatalf("comments = %v", resp.Data)
	}

	// 管理员关闭帖子：计数保留，匿名访问看不到
	if status, _ = c.do(http.MethodPatch, "/api/v1/admin/posts/"+postID+"/status", aliceToken, gin.H{"status": "inactive"}); status != http.StatusForbidden {
		t.Fatalf("user moderation status = %d, want 403", status)
	}
	status, resp = c.do(http.MethodPatch, "/api/v1/admin/posts/"+postID+"/status", adminToken, gin.H{"status": "inactive"})
	if status != http.StatusOK || dataField(resp, "dislikes_count") != float64(1) {
		t.Fatalf("moderation = %d %+v", status, resp)
	}
	if status, _ = c.do(http.MethodGet, postPath, "", nil); status != http.StatusNotFound {
		t.Fatalf("anonymous inactive post status = %d, want 404", status)
	}
	if status, _ = c.do(http.MethodGet, postPath, aliceToken, nil); status != http.StatusOK {
		t.Fatalf("author inactive post status = %d, want 200", status)
	}

	status, resp = c.do(http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	if status != http.StatusOK || dataField(resp, "posts") != float64(1) || dataField(resp, "users") != float64(2) {
		t.Fatalf("dashboard = %d %+v", status, resp)
	}

	// 登出后旧 token 失效
	if status, _ = c.do(http.MethodPost, "/api/v1/auth/logout", aliceToken, nil); status != http.StatusOK {
		t.Fatalf("logout status = %d", status)
	}
	if status, _ = c.do(http.MethodPost, "/api/v1/posts", aliceToken, gin.H{"title": "again"}); status != http.StatusUnauthorized {
		t.Fatalf("post after logout status = %d, want 401", status)
	}
}

func (c client) userID(login string) string {
	c.t.Helper()
	status, resp := c.do(http.MethodGet, "/api/v1/users", "", nil)
	if status != http.StatusOK {
		c.t.Fatalf("list users = %d", status)
	}
	for _, item := range resp.Data.([]interface{}) {
		u := item.(map[string]interface{})
		if u["login"] == login {
			return u["id"].(string)
		}
	}
	c.t.Fatalf("user %s not found", login)
	return ""
}

func TestDeletedUserLosesSession(t *testing.T) {
	r := setupRouter(t)
	c := client{t, r}
	createUser(t, "admin", models.RoleAdmin)
	createUser(t, "bob", models.RoleUser)
	adminToken := c.login("admin")
	bobToken := c.login("bob")

	status, resp := c.do(http.MethodPost, "/api/v1/categories", adminToken, gin.H{"title": "General"})
	if status != http.StatusCreated {
		t.Fatalf("create category = %d %+v", status, resp)
	}
	categoryID := dataField(resp, "id").(string)

	// 先用 token 请求一次，让本地缓存记住它
	if status, _ = c.do(http.MethodGet, "/api/v1/posts", bobToken, nil); status != http.StatusOK {
		t.Fatalf("warm up status = %d", status)
	}
	if status, resp = c.do(http.MethodDelete, "/api/v1/users/"+c.userID("bob"), adminToken, nil); status != http.StatusOK {
		t.Fatalf("delete user = %d %+v", status, resp)
	}

	status, resp = c.do(http.MethodPost, "/api/v1/posts", bobToken, gin.H{
		"title":      "ghost",
		"content":    "still here?",
		"categories": []string{categoryID},
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("deleted user create post = %d %+v, want 401", status, resp)
	}
}

func TestRoleChangeRevokesSession(t *testing.T) {
	r := setupRouter(t)
	c := client{t, r}
	createUser(t, "root", models.RoleAdmin)
	createUser(t, "mod", models.RoleAdmin)
	rootToken := c.login("root")
	modToken := c.login("mod")

	if status, _ := c.do(http.MethodGet, "/api/v1/admin/dashboard", modToken, nil); status != http.StatusOK {
		t.Fatalf("admin dashboard = %d", status)
	}
	status, resp := c.do(http.MethodPatch, "/api/v1/users/"+c.userID("mod"), rootToken, gin.H{"role": models.RoleUser})
	if status != http.StatusOK || dataField(resp, "role") != models.RoleUser {
		t.Fatalf("demote = %d %+v", status, resp)
	}

	// 旧 token 带着 admin 角色，必须失效
	if status, _ = c.do(http.MethodGet, "/api/v1/admin/dashboard", modToken, nil); status != http.StatusUnauthorized {
		t.Fatalf("demoted admin dashboard = %d, want 401", status)
	}
	modToken = c.login("mod")
	if status, _ = c.do(http.MethodGet, "/api/v1/admin/dashboard", modToken, nil); status != http.StatusForbidden {
		t.Fatalf("relogin dashboard = %d, want 403", status)
	}
}
