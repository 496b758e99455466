package cookie

import (
	"net/http"
	"time"

	"station-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var sameSiteModes = map[string]http.SameSite{
	"Strict": http.SameSiteStrictMode,
	"Lax":    http.SameSiteLaxMode,
	"None":   http.SameSiteNoneMode,
}

// SetAccessToken stores the session token in an HttpOnly cookie that expires with it.
func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	ck := accessCookie(cfg, token)
	ck.MaxAge = int(ttl.Seconds())
	ck.Expires = time.Now().Add(ttl)
	http.SetCookie(c.Writer, ck)
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	ck := accessCookie(cfg, "")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	http.SetCookie(c.Writer, ck)
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

func accessCookie(cfg config.CookieConfig, value string) *http.Cookie {
	mode, ok := sameSiteModes[cfg.SameSite]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		Secure:   cfg.Secure || mode == http.SameSiteNoneMode,
		HttpOnly: true,
		SameSite: mode,
	}
}
