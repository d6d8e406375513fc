package jwt

import (
	"testing"
	"time"
)

func TestGenAndParseToken(t *testing.T) {
	Init("test-secret", time.Hour, 2*time.Hour)

	aToken, rToken, err := GenToken(42, "admin")
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	claims, err := ParseToken(aToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}

	uid, err := ParseRefreshToken(rToken)
	if err != nil || uid != 42 {
		t.Fatalf("ParseRefreshToken = %d, %v", uid, err)
	}

	// refresh token 不带 user_id，不能当 access token 用
	if _, err := ParseToken(rToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	Init("secret-a", time.Hour, time.Hour)
	aToken, _, err := GenToken(1, "user")
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	Init("secret-b", 0, 0)
	if _, err := ParseToken(aToken); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestExpiredToken(t *testing.T) {
	Init("secret", time.Millisecond, time.Millisecond)
	aToken, rToken, err := GenToken(7, "user")
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := ParseToken(aToken); err == nil {
		t.Fatal("expired access token accepted")
	}
	if _, err := ParseRefreshToken(rToken); err == nil {
		t.Fatal("expired refresh token accepted")
	}
}
