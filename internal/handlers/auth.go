package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/auth"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/dto"
	"github.com/rentalhub/rentalhub-api/internal/middleware"
	"github.com/rentalhub/rentalhub-api/internal/models"
	"github.com/rentalhub/rentalhub-api/internal/policy"
	"github.com/rentalhub/rentalhub-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const maxUploadBytes = 10 << 20

type AuthHandler struct {
	tokens *auth.TokenManager
	store  storage.BlobStore
}

func NewAuthHandler(tokens *auth.TokenManager, store storage.BlobStore) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		store:  store,
	}
}

// Login exchanges form-encoded credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	if err := database.GetDB().Where("username = ?", username).First(&user).Error; err != nil {
		apierrors.Unauthorized(c, "Incorrect username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		apierrors.Unauthorized(c, "Incorrect username or password")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		apierrors.InternalError(c, "Failed to create access token")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Role:        string(user.Role),
	})
}

// Register creates a new account. Username and email must both be unused.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var existing models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&existing).Error; err == nil {
		apierrors.BadRequest(c, "Username already registered")
		return
	}
	if err := database.GetDB().Where("email = ?", req.Email).First(&existing).Error; err == nil {
		apierrors.BadRequest(c, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apierrors.InternalError(c, "Failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.Role(req.Role),
		PhoneNumber:  req.PhoneNumber,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMe applies the self-service allow-list to the authenticated user's
// profile. A non-empty password key re-hashes the password.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	policy.ApplyUserPatch(&user, payload)

	if password, ok := payload["password"].(string); ok && password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			apierrors.InternalError(c, "Failed to hash password")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UploadProfileImage stores a new profile image and records its URL.
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	data, fileName, ok := readUpload(c, "file")
	if !ok {
		return
	}

	url, err := h.store.Save(fileName, data)
	if err != nil {
		apierrors.InternalError(c, "Failed to store file")
		return
	}

	user.ProfileImageURL = url
	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image uploaded successfully"})
}

// SearchUsers finds users by role and/or a fuzzy name query. Tenants may not
// search. Results are capped at 10.
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if policy.IsTenant(user) {
		apierrors.Forbidden(c, "Not authorized to search users")
		return
	}

	query := database.GetDB().Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if q := c.Query("query"); q != "" {
		if len(q) < 2 {
			apierrors.BadRequest(c, "Query must be at least 2 characters")
			return
		}
		like := "%" + q + "%"
		query = query.Where(
			"username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}

	var users []models.User
	if err := query.Limit(10).Find(&users).Error; err != nil {
		apierrors.InternalError(c, "Failed to search users")
		return
	}

	results := make([]dto.UserSearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, dto.ToUserSearchResult(u))
	}
	c.JSON(http.StatusOK, results)
}

// readUpload pulls a multipart file field into memory, capped at
// maxUploadBytes. It writes the error response itself on failure.
func readUpload(c *gin.Context, field string) ([]byte, string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		apierrors.BadRequest(c, "File is required")
		return nil, "", false
	}
	if fileHeader.Size > maxUploadBytes {
		apierrors.BadRequest(c, "File too large")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read file")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		apierrors.InternalError(c, "Failed to read file")
		return nil, "", false
	}
	return data, fileHeader.Filename, true
}

// parseIDParam reads a numeric path parameter. It writes the error response
// itself on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
