package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trustsitter/internal/models"
)

type SitterController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSitterController(db *gorm.DB, logger *zap.Logger) *SitterController {
	return &SitterController{db: db, logger: logger}
}

// requireSitter resolves the caller to a sitter row. Non-sitter callers get a
// 404, not a 403, to avoid revealing that the route exists.
func (s *SitterController) requireSitter(c *gin.Context) (models.Sitter, bool) {
	var user models.User
	err := s.db.First(&user, currentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.UserType != models.UserTypeSitter) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found or not a sitter"})
		return models.Sitter{}, false
	}
	if err != nil {
		internalError(c, s.logger, "user lookup failed", err)
		return models.Sitter{}, false
	}

	var sitter models.Sitter
	err = s.db.Where("user_id = ?", user.ID).First(&sitter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sitter profile not found"})
		return models.Sitter{}, false
	}
	if err != nil {
		internalError(c, s.logger, "sitter lookup failed", err)
		return models.Sitter{}, false
	}
	return sitter, true
}

func (s *SitterController) RequestVerification(c *gin.Context) {
	sitter, ok := s.requireSitter(c)
	if !ok {
		return
	}
	if sitter.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Sitter is already verified"})
		return
	}
	if err := s.db.Model(&sitter).Update("verification_requested", true).Error; err != nil {
		internalError(c, s.logger, "verification request failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification request submitted successfully"})
}

type availabilityPayload struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// AddAvailability stores a slot exactly as sent; day and time values are not
// validated beyond presence.
func (s *SitterController) AddAvailability(c *gin.Context) {
	sitter, ok := s.requireSitter(c)
	if !ok {
		return
	}

	var p availabilityPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	row := models.Availability{
		SitterID:  sitter.ID,
		Day:       p.Day,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
	if err := s.db.Create(&row).Error; err != nil {
		internalError(c, s.logger, "availability create failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Availability added successfully",
		"availability": availabilityEntry{
			ID:        row.ID,
			Day:       row.Day,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		},
	})
}

// DeleteAvailability removes one of the caller's own slots. Ownership is part
// of the delete predicate, so existence and ownership are checked in the same
// statement as the mutation.
func (s *SitterController) DeleteAvailability(c *gin.Context) {
	sitter, ok := s.requireSitter(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Availability not found or not authorized"})
		return
	}

	res := s.db.Where("id = ? AND sitter_id = ?", id, sitter.ID).Delete(&models.Availability{})
	if res.Error != nil {
		internalError(c, s.logger, "availability delete failed", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Availability not found or not authorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability deleted successfully"})
}

// PublishProfile flips the search-visibility flag once the profile is
// complete: services, experience, an hourly rate and at least one
// availability slot. There is no unpublish operation.
func (s *SitterController) PublishProfile(c *gin.Context) {
	sitter, ok := s.requireSitter(c)
	if !ok {
		return
	}

	if len(sitter.Services) == 0 || sitter.Experience == "" || sitter.HourlyRate == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Profile is incomplete. Please add services, experience, and hourly rate."})
		return
	}

	var slots int64
	if err := s.db.Model(&models.Availability{}).Where("sitter_id = ?", sitter.ID).Count(&slots).Error; err != nil {
		internalError(c, s.logger, "availability count failed", err)
		return
	}
	if slots == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please add at least one availability before publishing your profile."})
		return
	}

	if err := s.db.Model(&sitter).Update("is_profile_public", true).Error; err != nil {
		internalError(c, s.logger, "publish failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile published successfully"})
}

type sitterSummary struct {
	ID           uint                `json:"id"`
	UserID       uint                `json:"userId"`
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	City         string              `json:"city"`
	IsVerified   bool                `json:"isVerified"`
	Services     models.StringList   `json:"services"`
	Experience   string              `json:"experience"`
	HourlyRate   float64             `json:"hourlyRate"`
	Bio          string              `json:"bio"`
	Availability []availabilityEntry `json:"availability"`
}

// Search lists published sitter profiles. All filters are optional and
// AND-combined; unpublished sitters never appear. The day filter uses a
// sub-select so a sitter with several slots on the same day shows up once.
func (s *SitterController) Search(c *gin.Context) {
	var caller models.User
	err := s.db.First(&caller, currentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		internalError(c, s.logger, "user lookup failed", err)
		return
	}

	q := s.db.Model(&models.Sitter{}).
		Select("sitters.*").
		Joins("JOIN users ON users.id = sitters.user_id").
		Where("sitters.is_profile_public = ?", true)

	if service := c.Query("service"); service != "" {
		q = q.Where("sitters.services LIKE ?", "%"+service+"%")
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("users.city = ?", city)
	}
	if strings.EqualFold(c.Query("verified"), "true") {
		q = q.Where("sitters.is_verified = ?", true)
	}
	if day := c.Query("day"); day != "" {
		q = q.Where("sitters.id IN (?)",
			s.db.Model(&models.Availability{}).Select("sitter_id").Where("day = ?", day))
	}

	var sitters []models.Sitter
	if err := q.Find(&sitters).Error; err != nil {
		internalError(c, s.logger, "sitter search failed", err)
		return
	}

	results := make([]sitterSummary, 0, len(sitters))
	for _, sitter := range sitters {
		var owner models.User
		if err := s.db.First(&owner, sitter.UserID).Error; err != nil {
			internalError(c, s.logger, "owner lookup failed", err)
			return
		}
		var rows []models.Availability
		if err := s.db.Where("sitter_id = ?", sitter.ID).Order("id").Find(&rows).Error; err != nil {
			internalError(c, s.logger, "availability lookup failed", err)
			return
		}
		results = append(results, sitterSummary{
			ID:           sitter.ID,
			UserID:       owner.ID,
			FirstName:    owner.FirstName,
			LastName:     owner.LastName,
			City:         owner.City,
			IsVerified:   sitter.IsVerified,
			Services:     sitter.Services,
			Experience:   sitter.Experience,
			HourlyRate:   sitter.HourlyRate,
			Bio:          sitter.Bio,
			Availability: availabilityEntries(rows),
		})
	}

	c.JSON(http.StatusOK, results)
}
