package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pquerna/otp/totp"
	"github.com/spf13/viper"
	"github.com/tifye/climateclock/assert"
)

// Admin routes are gated by a short-lived JWT handed out in exchange for a
// TOTP passcode. There are no accounts; whoever holds the OTP secret is the
// operator.

func verifyToken(c echo.Context, config *viper.Viper) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return jwt.ErrTokenMalformed
	}

	signingKey := config.GetString("JWT_SIGNING_KEY")
	assert.AssertNotEmpty(signingKey)

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	_, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(signingKey), nil
	}, jwt.WithExpirationRequired())
	return err
}

func requireAuthMiddleware(logger *log.Logger, config *viper.Viper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := verifyToken(c, config)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.String(http.StatusUnauthorized, "token expired")
				}

				if errors.Is(err, jwt.ErrTokenMalformed) {
					return c.String(http.StatusBadRequest, "malformed token")
				}

				logger.Debug("token parse fail", "err", err)
				return c.NoContent(http.StatusBadRequest)
			}

			return next(c)
		}
	}
}

func handlePostVerifyToken(logger *log.Logger, config *viper.Viper) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := verifyToken(c, config)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.String(http.StatusUnauthorized, "token expired")
			}

			if errors.Is(err, jwt.ErrTokenMalformed) {
				return c.String(http.StatusBadRequest, "malformed token")
			}

			logger.Debug("token parse fail", "err", err)
			return c.NoContent(http.StatusBadRequest)
		}

		return c.NoContent(http.StatusOK)
	}
}

func handleGetToken(logger *log.Logger, config *viper.Viper) echo.HandlerFunc {
	type request struct {
		Passcode string `query:"passcode"`
	}
	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return err
		}
		if req.Passcode == "" {
			return c.NoContent(http.StatusUnauthorized)
		}

		secret := config.GetString("OTP_SECRET")
		assert.AssertNotEmpty(secret)

		if !totp.Validate(req.Passcode, secret) {
			logger.Debug("invalid passcode")
			return c.NoContent(http.StatusUnauthorized)
		}

		signingKey := config.GetString("JWT_SIGNING_KEY")
		assert.AssertNotEmpty(signingKey)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		})
		signed, err := token.SignedString([]byte(signingKey))
		if err != nil {
			logger.Error("sign token", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}

		return c.String(http.StatusOK, signed)
	}
}
