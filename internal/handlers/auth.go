package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"winetour-backend/internal/middleware"
	"winetour-backend/internal/models"
	"winetour-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		log.Printf("🔐 Login attempt for: %s", req.Email)

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			utils.RespondJSON(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		// Find user by email
		var user models.User
		query := "SELECT * FROM users WHERE email = $1"
		if err := db.Get(&user, query, req.Email); err != nil {
			log.Printf("❌ User not found: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		// Verify password
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		// Create JWT token with user info
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    user.Role,
			"iat":     time.Now().Unix(),
			"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			log.Println("❌ Failed to create token")
			http.Error(w, "Failed to create token", http.StatusInternalServerError)
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Login successful: %s (%s)", user.Email, user.Role)

		utils.RespondJSON(w, http.StatusOK, LoginResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// GetAuthStatus returns the authenticated user's profile
func GetAuthStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", userClaims.UserID); err != nil {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}

		utils.RespondData(w, http.StatusOK, user.ToUserResponse())
	}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// CreateUser creates a planner or admin account (admin only)
func CreateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "email, password and name are required")
			return
		}
		if req.Role != "planner" && req.Role != "admin" {
			utils.RespondError(w, http.StatusBadRequest, "role must be 'planner' or 'admin'")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			ID:    uuid.New().String(),
			Email: req.Email,
			Name:  req.Name,
			Role:  req.Role,
		}

		_, err = db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, user.ID, user.Email, string(hashed), user.Name, user.Role)
		if err != nil {
			log.Printf("❌ Error creating user: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		log.Printf("✅ Created user: %s (%s)", user.Email, user.Role)
		utils.RespondData(w, http.StatusCreated, user.ToUserResponse())
	}
}
