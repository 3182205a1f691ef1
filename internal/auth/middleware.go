package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"careplus/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Роли, под которыми пользователь работает с очередью.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Ключи gin.Context, заполняемые AuthMiddleware.
const (
	CtxUserID          = "userID"
	CtxUserName        = "userName"
	CtxRole            = "role"
	CtxProfileComplete = "profileComplete"
)

// Claims access токена. Токены выпускает внешний сервис идентификации.
type Claims struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	ProfileComplete bool   `json:"profile_complete"`
	jwt.RegisteredClaims
}

var errMissingUserID = errors.New("token has no user_id")

// Verifier проверяет HS256 access токены.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse проверяет подпись и срок действия токена.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errMissingUserID
	}
	return claims, nil
}

// Sign выпускает токен с теми же claims. Используется в тестах и локальной отладке.
func (v *Verifier) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// AuthMiddleware проверяет валидность access токена
func (v *Verifier) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := v.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxProfileComplete, claims.ProfileComplete)
		c.Next()
	}
}

// RequireRole пропускает только пользователей с указанной активной ролью.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "FORBIDDEN_ROLE",
				Message: "Недостаточно прав для этого действия",
				Details: "требуется роль " + role,
			})
			return
		}
		c.Next()
	}
}
