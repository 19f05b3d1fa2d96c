package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Lelo88/menu-api-golang/internal/httpx"
)

// ErrorInvalidToken cubre cualquier credencial ausente, malformada o
// inválida. A propósito no distinguimos la causa hacia afuera.
var ErrorInvalidToken = errors.New("invalid token")

// Claims identifica al admin autenticado.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier valida bearer tokens HS256 emitidos por el colaborador de auth.
// Este servicio solo verifica; la emisión de tokens vive afuera.
type Verifier struct {
	secret []byte
}

// NewVerifier crea un verificador sobre un secreto HMAC compartido.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parsea y valida un token. Cualquier falla colapsa en ErrorInvalidToken.
func (verifier *Verifier) Verify(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		// Solo HMAC: un token firmado con otro método no pasa.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrorInvalidToken
		}
		return verifier.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrorInvalidToken
	}
	return claims, nil
}

type contextKey struct{}

var claimsKey contextKey

// AdminFrom devuelve los claims del admin autenticado, si los hay.
func AdminFrom(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// RequireAdmin es middleware chi: exige "Authorization: Bearer <token>"
// válido antes de llegar a cualquier handler de escritura/upload.
// El rechazo es uniforme: 401 "unauthorized", sin detalle de causa.
func (verifier *Verifier) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		header := request.Header.Get("Authorization")

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httpx.Fail(writer, request, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			httpx.Fail(writer, request, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		ctx := context.WithValue(request.Context(), claimsKey, claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
