package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trustsitter/internal/auth"
	"trustsitter/internal/config"
	"trustsitter/internal/middleware"
	"trustsitter/internal/models"
	"trustsitter/internal/utils"
)

type AuthController struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    config.Config
	email  *utils.SMTPClient
}

func NewAuthController(db *gorm.DB, logger *zap.Logger, cfg config.Config, email *utils.SMTPClient) *AuthController {
	return &AuthController{db: db, logger: logger, cfg: cfg, email: email}
}

// currentUserID reads the id the auth middleware stored in the context.
func currentUserID(c *gin.Context) uint {
	v, _ := c.Get(middleware.UserIDKey)
	id, _ := v.(uint)
	return id
}

func internalError(c *gin.Context, logger *zap.Logger, what string, err error) {
	logger.Error(what, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// userSummary is the public-safe shape returned by register and login.
// IsVerified is null for families and a real boolean for sitters.
type userSummary struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	UserType   string `json:"userType"`
	IsVerified *bool  `json:"isVerified"`
}

type registerPayload struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AccountType string `json:"accountType" binding:"required,oneof=family sitter"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	ZipCode     string `json:"zipCode"`

	// family
	ChildrenCount string `json:"childrenCount"`
	SittingNeeds  string `json:"sittingNeeds"`

	// sitter
	Experience string   `json:"experience"`
	Services   []string `json:"services"`
	HourlyRate float64  `json:"hourlyRate"`
	Bio        string   `json:"bio"`
}

func (a *AuthController) Register(c *gin.Context) {
	var p registerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	err := a.db.Where("email = ?", p.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, a.logger, "email lookup failed", err)
		return
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		internalError(c, a.logger, "password hashing failed", err)
		return
	}

	user := models.User{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Password:  hash,
		UserType:  p.AccountType,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		ZipCode:   p.ZipCode,
	}

	// The user row and its family/sitter counterpart must land together.
	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if p.AccountType == models.UserTypeFamily {
			family := models.Family{
				UserID:        user.ID,
				ChildrenCount: p.ChildrenCount,
				SittingNeeds:  p.SittingNeeds,
			}
			return tx.Create(&family).Error
		}
		sitter := models.Sitter{
			UserID:     user.ID,
			Experience: p.Experience,
			Services:   models.StringList(p.Services),
			HourlyRate: p.HourlyRate,
			Bio:        p.Bio,
		}
		return tx.Create(&sitter).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		internalError(c, a.logger, "registration failed", err)
		return
	}

	token, err := auth.CreateAccessToken(user.ID, a.cfg.JWTSecret, a.cfg.TokenTTL)
	if err != nil {
		internalError(c, a.logger, "token issue failed", err)
		return
	}

	// welcome email is best-effort
	go func() {
		if a.email != nil {
			_ = a.email.SendWelcome(user.Email, user.FirstName)
		}
	}()

	var verified *bool
	if user.UserType == models.UserTypeSitter {
		v := false
		verified = &v
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": userSummary{
			ID:         user.ID,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Email:      user.Email,
			UserType:   user.UserType,
			IsVerified: verified,
		},
	})
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := a.db.Where("email = ?", p.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		internalError(c, a.logger, "user lookup failed", err)
		return
	}
	if err := auth.CheckPasswordHash(user.Password, p.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	var verified *bool
	if user.UserType == models.UserTypeSitter {
		v := false
		var sitter models.Sitter
		err := a.db.Where("user_id = ?", user.ID).First(&sitter).Error
		switch {
		case err == nil:
			v = sitter.IsVerified
		case !errors.Is(err, gorm.ErrRecordNotFound):
			internalError(c, a.logger, "sitter lookup failed", err)
			return
		}
		verified = &v
	}

	token, err := auth.CreateAccessToken(user.ID, a.cfg.JWTSecret, a.cfg.TokenTTL)
	if err != nil {
		internalError(c, a.logger, "token issue failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": userSummary{
			ID:         user.ID,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Email:      user.Email,
			UserType:   user.UserType,
			IsVerified: verified,
		},
	})
}
