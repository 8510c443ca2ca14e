package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
	"ppm-service/pkg/jwtutil"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// LoginRequest is the phone-entry login gate. There is no password or OTP:
// possession of the phone number is the whole credential.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// Login looks the phone number up in the registry, auto-registering unknown
// numbers with the "user" role, and returns a signed session token.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		log.Warn("Blank phone number rejected")
		prometheus.RecordError("validation_rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone number is required"})
	}

	findStart := time.Now()
	user, err := h.store.FindUser(phone)
	prometheus.TrackStoreOperation("find_user")(findStart)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return httpError(c, err)
		}

		// First login from this number: register it with the default role.
		newUser := model.User{Phone: phone, Name: "", Role: model.RoleUser}
		createStart := time.Now()
		err := h.store.CreateUser(newUser)
		prometheus.TrackStoreOperation("create_user")(createStart)
		if err != nil {
			return httpError(c, err)
		}
		prometheus.RegisterCounter.Inc()
		log.Info("New phone number registered", zap.String("phone", phone))
		user = &newUser
	}

	token, err := jwtutil.GenerateToken(user.Phone, user.Name, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("phone", user.Phone),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"phone": user.Phone,
			"name":  user.Name,
			"role":  user.Role,
			"admin": user.IsAdmin(),
		},
	})
}
