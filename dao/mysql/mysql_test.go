package mysql

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"usof/models"
	"usof/settings"
)

var idSeq int64 = 1000

func nextID() int64 {
	return atomic.AddInt64(&idSeq, 1)
}

// setupDB 每个测试一个独立的内存库；单连接保证事务内外看到同一份数据
func setupDB(t *testing.T) context.Context {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &settings.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	}
	if err := Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)
	return context.Background()
}

func seedUser(t *testing.T, ctx context.Context, login string) *models.User {
	t.Helper()
	u := &models.User{
		UserID:         nextID(),
		Login:          login,
		PasswordHash:   "x",
		FullName:       login + " full",
		Email:          login + "@example.com",
		Role:           models.RoleUser,
		EmailConfirmed: true,
	}
	if err := InsertUser(ctx, u, nil); err != nil {
		t.Fatalf("InsertUser(%s): %v", login, err)
	}
	return u
}

func seedCategory(t *testing.T, ctx context.Context, title string) *models.Category {
	t.Helper()
	c := &models.Category{ID: nextID(), Title: title, Slug: strings.ToLower(title)}
	if err := CreateCategory(ctx, c); err != nil {
		t.Fatalf("CreateCategory(%s): %v", title, err)
	}
	return c
}

func seedPost(t *testing.T, ctx context.Context, author *models.User, title string, cats ...int64) *models.Post {
	t.Helper()
	p := &models.Post{
		ID:       nextID(),
		AuthorID: author.UserID,
		Title:    title,
		Content:  "content of " + title,
		Status:   models.StatusActive,
	}
	if err := CreatePost(ctx, p, cats); err != nil {
		t.Fatalf("CreatePost(%s): %v", title, err)
	}
	return p
}

func seedComment(t *testing.T, ctx context.Context, author *models.User, post *models.Post) *models.Comment {
	t.Helper()
	c := &models.Comment{
		ID:       nextID(),
		PostID:   post.ID,
		AuthorID: author.UserID,
		Content:  "comment",
		Status:   models.StatusActive,
	}
	if err := CreateComment(ctx, c); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return c
}

func mustUser(t *testing.T, ctx context.Context, id int64) *models.User {
	t.Helper()
	u, err := GetUserByID(ctx, id)
	if err != nil || u == nil {
		t.Fatalf("GetUserByID(%d) = %v, %v", id, u, err)
	}
	return u
}

func mustPost(t *testing.T, ctx context.Context, id int64) *models.Post {
	t.Helper()
	p, err := GetPostByID(ctx, id)
	if err != nil || p == nil {
		t.Fatalf("GetPostByID(%d) = %v, %v", id, p, err)
	}
	return p
}

func TestInitRejectsUnknownDriver(t *testing.T) {
	err := Init(&settings.DatabaseConfig{Driver: "oracle"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestPostCategoriesAndListing(t *testing.T) {
	ctx := setupDB(t)
	alice := seedUser(t, ctx, "alice")
	bob := seedUser(t, ctx, "bob")
	golang := seedCategory(t, ctx, "Go")
	rust := seedCategory(t, ctx, "Rust")

	p1 := seedPost(t, ctx, alice, "first", golang.ID, 999999) // 未知分类被忽略
	p2 := seedPost(t, ctx, bob, "second", golang.ID, rust.ID)
	p3 := seedPost(t, ctx, bob, "third", rust.ID)
	if err := UpdatePost(ctx, p3.ID, map[string]interface{}{"status": models.StatusInactive}, nil); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	cats, err := GetCategoriesByPostIDs(ctx, []int64{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("GetCategoriesByPostIDs: %v", err)
	}
	if len(cats[p1.ID]) != 1 || cats[p1.ID][0].ID != golang.ID {
		t.Fatalf("p1 categories = %+v", cats[p1.ID])
	}
	if len(cats[p2.ID]) != 2 {
		t.Fatalf("p2 categories = %+v", cats[p2.ID])
	}

	posts, total, err := ListPosts(ctx, &PostQuery{Status: models.StatusActive, CategoryIDs: []int64{golang.ID, rust.ID}, Sort: SortDate, Desc: true})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Fatalf("active posts in go|rust: total=%d len=%d", total, len(posts))
	}

	posts, total, err = ListPosts(ctx, &PostQuery{Status: models.StatusInactive, AuthorID: bob.UserID})
	if err != nil || total != 1 || posts[0].ID != p3.ID {
		t.Fatalf("own inactive posts = %v, %d, %v", posts, total, err)
	}

	posts, _, err = ListPosts(ctx, &PostQuery{CategoryTitle: "Rust"})
	if err != nil || len(posts) != 2 {
		t.Fatalf("posts by category title = %d, %v", len(posts), err)
	}

	// 分页
	posts, total, err = ListPosts(ctx, &PostQuery{Page: 2, Limit: 2, Sort: SortDate})
	if err != nil || total != 3 || len(posts) != 1 {
		t.Fatalf("page 2 = len %d total %d, %v", len(posts), total, err)
	}

	// 替换分类
	empty := []int64{rust.ID}
	if err = UpdatePost(ctx, p1.ID, nil, &empty); err != nil {
		t.Fatalf("UpdatePost categories: %v", err)
	}
	cats, _ = GetCategoriesByPostIDs(ctx, []int64{p1.ID})
	if len(cats[p1.ID]) != 1 || cats[p1.ID][0].ID != rust.ID {
		t.Fatalf("p1 categories after reattach = %+v", cats[p1.ID])
	}
}

func TestFavorites(t *testing.T) {
	ctx := setupDB(t)
	alice := seedUser(t, ctx, "alice")
	p := seedPost(t, ctx, alice, "fav")

	if err := AddFavorite(ctx, alice.UserID, p.ID); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if err := AddFavorite(ctx, alice.UserID, p.ID); err == nil {
		t.Fatal("duplicate favorite accepted")
	}
	posts, err := ListFavoritePosts(ctx, alice.UserID)
	if err != nil || len(posts) != 1 {
		t.Fatalf("ListFavoritePosts = %d, %v", len(posts), err)
	}
	_, total, err := ListPosts(ctx, &PostQuery{FavoriteOf: alice.UserID})
	if err != nil || total != 1 {
		t.Fatalf("favorite filter total = %d, %v", total, err)
	}
	if err = RemoveFavorite(ctx, alice.UserID, p.ID); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	if err = RemoveFavorite(ctx, alice.UserID, p.ID); err == nil {
		t.Fatal("removing missing favorite should fail")
	}
}

func TestConfirmEmailToken(t *testing.T) {
	ctx := setupDB(t)
	u := &models.User{UserID: nextID(), Login: "carol", PasswordHash: "x", FullName: "Carol C", Email: "carol@example.com", Role: models.RoleUser}
	tok := &models.EmailToken{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := InsertUser(ctx, u, tok); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}

	if _, err := ConfirmEmail(ctx, "tok-1", time.Now().Add(2*time.Hour)); err == nil {
		t.Fatal("expired token accepted")
	}
	uid, err := ConfirmEmail(ctx, "tok-1", time.Now())
	if err != nil || uid != u.UserID {
		t.Fatalf("ConfirmEmail = %d, %v", uid, err)
	}
	if !mustUser(t, ctx, u.UserID).EmailConfirmed {
		t.Fatal("email not marked confirmed")
	}
	if _, err = ConfirmEmail(ctx, "tok-1", time.Now()); err == nil {
		t.Fatal("token reused")
	}
}

func TestInsertUserDuplicate(t *testing.T) {
	ctx := setupDB(t)
	seedUser(t, ctx, "dave")
	dup := &models.User{UserID: nextID(), Login: "dave", PasswordHash: "x", FullName: "Dave D", Email: "other@example.com", Role: models.RoleUser}
	if err := InsertUser(ctx, dup, nil); err == nil {
		t.Fatal("duplicate login accepted")
	}
	if err := CheckUserExist(ctx, "nobody", "dave@example.com"); err == nil {
		t.Fatal("email collision not detected")
	}
}

func TestResetPassword(t *testing.T) {
	ctx := setupDB(t)
	u := seedUser(t, ctx, "erin")
	tok := &models.PasswordResetToken{Token: "reset-1", UserID: u.UserID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := CreatePasswordResetToken(ctx, tok); err != nil {
		t.Fatalf("CreatePasswordResetToken: %v", err)
	}
	uid, err := ResetPassword(ctx, "reset-1", "new-hash", time.Now())
	if err != nil || uid != u.UserID {
		t.Fatalf("ResetPassword = %d, %v", uid, err)
	}
	if got := mustUser(t, ctx, u.UserID).PasswordHash; got != "new-hash" {
		t.Fatalf("password hash = %q", got)
	}
	if _, err = ResetPassword(ctx, "reset-1", "again", time.Now()); err == nil {
		t.Fatal("reset token reused")
	}
}

func TestDeleteCategoryDetachesPosts(t *testing.T) {
	ctx := setupDB(t)
	u := seedUser(t, ctx, "frank")
	cat := seedCategory(t, ctx, "Temp")
	p := seedPost(t, ctx, u, "tagged", cat.ID)
	if err := DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	cats, _ := GetCategoriesByPostIDs(ctx, []int64{p.ID})
	if len(cats[p.ID]) != 0 {
		t.Fatalf("categories after delete = %+v", cats[p.ID])
	}
	if err := DeleteCategory(ctx, cat.ID); err == nil {
		t.Fatal("deleting missing category should fail")
	}
}
