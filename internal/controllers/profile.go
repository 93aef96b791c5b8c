package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trustsitter/internal/models"
)

type ProfileController struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileController(db *gorm.DB, logger *zap.Logger) *ProfileController {
	return &ProfileController{db: db, logger: logger}
}

type availabilityEntry struct {
	ID        uint   `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func availabilityEntries(rows []models.Availability) []availabilityEntry {
	entries := make([]availabilityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, availabilityEntry{
			ID:        row.ID,
			Day:       row.Day,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return entries
}

// Get returns the caller's full profile: shared user fields plus the
// family or sitter half, and for sitters the availability list in insertion
// order.
func (p *ProfileController) Get(c *gin.Context) {
	var user models.User
	err := p.db.First(&user, currentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		internalError(c, p.logger, "user lookup failed", err)
		return
	}

	resp := gin.H{
		"id":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"phone":        user.Phone,
		"address":      user.Address,
		"city":         user.City,
		"zipCode":      user.ZipCode,
		"profilePhoto": user.ProfilePhoto,
		"userType":     user.UserType,
	}

	if user.UserType == models.UserTypeFamily {
		var family models.Family
		err := p.db.Where("user_id = ?", user.ID).First(&family).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			internalError(c, p.logger, "family lookup failed", err)
			return
		}
		if err == nil {
			resp["childrenCount"] = family.ChildrenCount
			resp["childrenAges"] = family.ChildrenAges
			resp["sittingNeeds"] = family.SittingNeeds
			resp["additionalInfo"] = family.AdditionalInfo
		}
	} else {
		var sitter models.Sitter
		err := p.db.Where("user_id = ?", user.ID).First(&sitter).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			internalError(c, p.logger, "sitter lookup failed", err)
			return
		}
		if err == nil {
			resp["experience"] = sitter.Experience
			resp["isVerified"] = sitter.IsVerified
			resp["services"] = sitter.Services
			resp["ageGroups"] = sitter.AgeGroups
			resp["certifications"] = sitter.Certifications
			resp["hourlyRate"] = sitter.HourlyRate
			resp["bio"] = sitter.Bio
			resp["isProfilePublic"] = sitter.IsProfilePublic
			resp["verificationRequested"] = sitter.VerificationRequested

			var rows []models.Availability
			if err := p.db.Where("sitter_id = ?", sitter.ID).Order("id").Find(&rows).Error; err != nil {
				internalError(c, p.logger, "availability lookup failed", err)
				return
			}
			resp["availability"] = availabilityEntries(rows)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// updateProfilePayload uses pointers (and nil-able slices) so a field that is
// absent from the body can be told apart from one set to its zero value.
// Email and account type are deliberately not here; neither is
// isProfilePublic, which only flips through the publish operation.
type updateProfilePayload struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	ZipCode      *string `json:"zipCode"`
	ProfilePhoto *string `json:"profilePhoto"`

	// family
	ChildrenCount  *string  `json:"childrenCount"`
	ChildrenAges   []string `json:"childrenAges"`
	SittingNeeds   *string  `json:"sittingNeeds"`
	AdditionalInfo *string  `json:"additionalInfo"`

	// sitter
	Experience     *string  `json:"experience"`
	Services       []string `json:"services"`
	AgeGroups      []string `json:"ageGroups"`
	Certifications []string `json:"certifications"`
	HourlyRate     *float64 `json:"hourlyRate"`
	Bio            *string  `json:"bio"`
}

// Update applies a partial update: fields present in the body overwrite the
// stored values, everything else stays untouched.
func (p *ProfileController) Update(c *gin.Context) {
	var payload updateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	err := p.db.First(&user, currentUserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		internalError(c, p.logger, "user lookup failed", err)
		return
	}

	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if payload.Address != nil {
		user.Address = *payload.Address
	}
	if payload.City != nil {
		user.City = *payload.City
	}
	if payload.ZipCode != nil {
		user.ZipCode = *payload.ZipCode
	}
	if payload.ProfilePhoto != nil {
		user.ProfilePhoto = *payload.ProfilePhoto
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if user.UserType == models.UserTypeFamily {
			var family models.Family
			err := tx.Where("user_id = ?", user.ID).First(&family).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if payload.ChildrenCount != nil {
				family.ChildrenCount = *payload.ChildrenCount
			}
			if payload.ChildrenAges != nil {
				family.ChildrenAges = models.StringList(payload.ChildrenAges)
			}
			if payload.SittingNeeds != nil {
				family.SittingNeeds = *payload.SittingNeeds
			}
			if payload.AdditionalInfo != nil {
				family.AdditionalInfo = *payload.AdditionalInfo
			}
			return tx.Save(&family).Error
		}

		var sitter models.Sitter
		err := tx.Where("user_id = ?", user.ID).First(&sitter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if payload.Experience != nil {
			sitter.Experience = *payload.Experience
		}
		if payload.Services != nil {
			sitter.Services = models.StringList(payload.Services)
		}
		if payload.AgeGroups != nil {
			sitter.AgeGroups = models.StringList(payload.AgeGroups)
		}
		if payload.Certifications != nil {
			sitter.Certifications = models.StringList(payload.Certifications)
		}
		if payload.HourlyRate != nil {
			sitter.HourlyRate = *payload.HourlyRate
		}
		if payload.Bio != nil {
			sitter.Bio = *payload.Bio
		}
		return tx.Save(&sitter).Error
	})
	if err != nil {
		internalError(c, p.logger, "profile update failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
