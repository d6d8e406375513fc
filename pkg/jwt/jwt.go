package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "usof"

// UserClaims access token 携带用户 ID 与角色
type UserClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var (
	AccessTokenExpireDuration  = 7 * 24 * time.Hour
	RefreshTokenExpireDuration = 30 * 24 * time.Hour

	mySecret = []byte("usof-dev-secret")
)

var ErrInvalidToken = errors.New("invalid token")

// Init 设置签名密钥与有效期，secret 为空时保留开发用默认值
func Init(secret string, accessTTL, refreshTTL time.Duration) {
	if secret != "" {
		mySecret = []byte(secret)
	}
	if accessTTL > 0 {
		AccessTokenExpireDuration = accessTTL
	}
	if refreshTTL > 0 {
		RefreshTokenExpireDuration = refreshTTL
	}
}

// GenToken 生成 access token 和 refresh token
func GenToken(userID int64, role string) (aToken, rToken string, err error) {
	now := time.Now()
	c := UserClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenExpireDuration)),
			Issuer:    issuer,
		},
	}
	aToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(mySecret)
	if err != nil {
		return "", "", err
	}

	rToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenExpireDuration)),
		Issuer:    issuer,
	}).SignedString(mySecret)
	if err != nil {
		return "", "", err
	}
	return aToken, rToken, nil
}

func keyFunc(t *jwt.Token) (interface{}, error) {
	return mySecret, nil
}

// ParseToken 解析 access token
func ParseToken(tokenString string) (*UserClaims, error) {
	mc := new(UserClaims)
	token, err := jwt.ParseWithClaims(tokenString, mc, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || mc.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return mc, nil
}

// ParseRefreshToken 校验 refresh token 并返回其中的用户 ID
func ParseRefreshToken(rTokenString string) (int64, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(rTokenString, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
