package middlewares

import (
	"encoding/base64"
	"fmt"
	"os"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware returns a JWT middleware using either JWKS or local key for validation
func JWTMiddleware(c *fiber.Ctx) error {
	// Check if we're in test mode (using local key)
	if os.Getenv("JWT_TEST_MODE") == "true" {
		return jwtware.New(jwtware.Config{
			SigningKey:     getSigningKeyOrPanic(),
			SuccessHandler: jwtSuccessHandler,
			ErrorHandler:   jwtErrorHandler,
		})(c)
	}

	// Production mode (using JWKS from the platform identity provider)
	return jwtware.New(jwtware.Config{
		Filter:         nil,
		SuccessHandler: jwtSuccessHandler,
		ErrorHandler:   jwtErrorHandler,
		JWKSetURLs:     []string{os.Getenv("IDP_JWKS_URL")},
	})(c)
}

// jwtSuccessHandler handles successful JWT validation
func jwtSuccessHandler(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)

	claims := token.Claims.(jwt.MapClaims)
	resourceAccess := claims["resource_access"].(map[string]interface{})
	// Store claims in context for use in protected routes
	c.Locals("token", token.Raw)
	c.Locals("claims", claims)
	c.Locals("user_id", resourceAccess["id"])
	c.Locals("display_name", resourceAccess["displayName"])
	c.Locals("role", resourceAccess["role"])
	c.Locals("tenant", resourceAccess["tenant"])
	c.Locals("permissions", resourceAccess["permissions"])
	c.Locals("is_admin", resourceAccess["isAdmin"])

	return c.Next()
}

// jwtErrorHandler handles JWT validation errors
func jwtErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized - " + err.Error(),
		"success": false,
	})
}

// getSigningKeyOrPanic retrieves the JWT signing key or panics
func getSigningKeyOrPanic() jwtware.SigningKey {
	key, err := getSigningKey()
	if err != nil {
		panic(err)
	}
	return jwtware.SigningKey{Key: key, JWTAlg: "HS256"}
}

// getSigningKey retrieves the JWT signing key from the environment
func getSigningKey() ([]byte, error) {
	encodedSecret := os.Getenv("JWT_SECRET")
	if encodedSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	decodedSecret, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT_SECRET: %w", err)
	}

	return decodedSecret, nil
}
