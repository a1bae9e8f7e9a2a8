package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/utils"
)

const refreshCookieName = "refresh-token"

// AuthController handles login, logout and password reset
type AuthController struct {
	users UserStore
}

// NewAuthController creates a new auth controller
func NewAuthController(users UserStore) *AuthController {
	return &AuthController{users: users}
}

// Login authenticates a user and issues an access token plus a refresh cookie
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User account does not exist!",
		})
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials!",
		})
	}

	accessToken, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		log.Printf("failed to generate tokens for %s: %v", user.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate authentication tokens",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: echo.Map{
			"accessToken": accessToken,
			"role":        user.Role,
		},
	})
}

// Logout clears the refresh cookie and blacklists the presented access token
func (ac *AuthController) Logout(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims != nil {
		if raw := middleware.RawToken(c); raw != "" {
			middleware.BlacklistToken(raw, time.Unix(claims.ExpiresAt, 0))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// ForgotPassword issues a reset token and emails a reset link
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A valid email is required",
		})
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found.",
		})
	}

	resetToken := utils.GenerateResetToken()
	expires := time.Now().Add(15 * time.Minute)

	err = ac.users.UpdateByEmail(ctx, user.Email, bson.M{
		"$set": bson.M{
			"resetToken":        resetToken,
			"resetTokenExpires": expires,
			"updatedAt":         time.Now(),
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store reset token",
		})
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s&email=%s", frontendURL, resetToken, user.Email)

	// Delivery failures are logged, not surfaced to the caller
	go func(to, link string) {
		body := fmt.Sprintf(`<p>Hello,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in 15 minutes.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`, link)
		if err := utils.SendMail(to, "Password Reset Request", body); err != nil {
			log.Printf("failed to send password reset email to %s: %v", to, err)
		}
	}(user.Email, resetLink)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset email sent successfully.",
	})
}

// ResetPassword validates a reset token and sets a new password
func (ac *AuthController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, reset token and new password are required",
		})
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}
	if user == nil || user.ResetToken == "" || user.ResetToken != req.ResetToken ||
		user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email or expired reset token!",
		})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	err = ac.users.UpdateByEmail(ctx, user.Email, bson.M{
		"$set": bson.M{
			"password":  hashed,
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"resetToken":        "",
			"resetTokenExpires": "",
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset successfully.",
	})
}
