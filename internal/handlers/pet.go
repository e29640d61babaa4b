package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/services"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const petsPerPage = 30

type PetHandler struct {
	mailService *services.MailService
}

func NewPetHandler() *PetHandler {
	return &PetHandler{
		mailService: services.NewMailService(),
	}
}

type petRequest struct {
	Name         string `json:"name"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	Sex          string `json:"sex"`
	City         string `json:"city"`
	Description  string `json:"description"`
	PhotoURL     string `json:"photoUrl"`
	ChainTokenID string `json:"chainTokenId"`
}

type lostRequest struct {
	Lost    bool   `json:"lost"`
	Details string `json:"details"`
}

type contactRequest struct {
	Message string `json:"message"`
}

var validSpecies = map[string]bool{"dog": true, "cat": true, "bird": true, "other": true}

// Create registers a pet profile. The on-chain mint happens in the web
// client; ChainTokenID just records its result.
func (h *PetHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		Fail(c, http.StatusBadRequest, "pet name is required")
		return
	}
	if !validSpecies[req.Species] {
		Fail(c, http.StatusBadRequest, "species must be dog, cat, bird or other")
		return
	}

	pet := models.Pet{
		Pid:          utils.GeneratePid(8),
		UserID:       user.ID,
		Name:         req.Name,
		Species:      req.Species,
		Breed:        req.Breed,
		Sex:          req.Sex,
		City:         req.City,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
		ChainTokenID: req.ChainTokenID,
	}
	if err := db.DB.Create(&pet).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	OK(c, gin.H{"pid": pet.Pid})
}

// List is the public browse/search endpoint. lost=1 narrows to lost pets;
// species, city and q filter further.
func (h *PetHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	query := db.DB.Model(&models.Pet{}).Preload("User")

	if c.Query("lost") == "1" {
		query = query.Where("is_lost = ?", true)
	}
	if species := c.Query("species"); species != "" {
		query = query.Where("species = ?", species)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR breed ILIKE ? OR lost_details ILIKE ?", like, like, like)
	}

	var pets []models.Pet
	offset := (page - 1) * petsPerPage
	err := query.Order("lost_since DESC NULLS LAST, created_at DESC").
		Offset(offset).Limit(petsPerPage).Find(&pets).Error
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	// Owner contact details never appear in listings
	for i := range pets {
		pets[i].User.Email = ""
	}

	c.JSON(http.StatusOK, gin.H{"pets": pets, "page": page})
}

func (h *PetHandler) Detail(c *gin.Context) {
	var pet models.Pet
	if err := db.DB.Preload("User").Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}

	var watchCount int64
	db.DB.Model(&models.Watch{}).Where("pet_id = ?", pet.ID).Count(&watchCount)
	pet.WatchCount = int(watchCount)

	// The owner's email is reachable only while the pet is lost; until
	// then finders go through the contact relay.
	if !pet.IsLost {
		pet.User.Email = ""
	}

	body := gin.H{
		"pet":             pet,
		"descriptionHtml": utils.RenderMarkdownCached(pet.Description),
	}
	if user := CurrentUser(c); user != nil {
		var count int64
		db.DB.Model(&models.Watch{}).Where("pet_id = ? AND user_id = ?", pet.ID, user.ID).Count(&count)
		body["watching"] = count > 0
	}

	c.JSON(http.StatusOK, body)
}

func (h *PetHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var pet models.Pet
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}
	if pet.UserID != user.ID {
		Fail(c, http.StatusForbidden, "not your pet")
		return
	}

	var req petRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != "" {
		pet.Name = req.Name
	}
	if req.Species != "" {
		if !validSpecies[req.Species] {
			Fail(c, http.StatusBadRequest, "species must be dog, cat, bird or other")
			return
		}
		pet.Species = req.Species
	}
	pet.Breed = req.Breed
	pet.Sex = req.Sex
	pet.City = req.City
	pet.Description = req.Description
	if req.PhotoURL != "" {
		pet.PhotoURL = req.PhotoURL
	}
	if req.ChainTokenID != "" {
		pet.ChainTokenID = req.ChainTokenID
	}

	if err := db.DB.Save(&pet).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}

// SetLost toggles the lost flag, mirroring the on-chain status toggle.
// Marking a pet found notifies everyone watching it.
func (h *PetHandler) SetLost(c *gin.Context) {
	user := CurrentUser(c)

	var pet models.Pet
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}
	if pet.UserID != user.ID {
		Fail(c, http.StatusForbidden, "not your pet")
		return
	}

	var req lostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	wasLost := pet.IsLost
	pet.IsLost = req.Lost
	if req.Lost {
		now := time.Now()
		pet.LostSince = &now
		pet.LostDetails = req.Details
	} else {
		pet.LostSince = nil
		pet.LostDetails = ""
	}

	if err := db.DB.Save(&pet).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	if wasLost && !req.Lost {
		go h.notifyWatchers(&pet)
	}

	OK(c, gin.H{"isLost": pet.IsLost})
}

func (h *PetHandler) notifyWatchers(pet *models.Pet) {
	var watches []models.Watch
	if err := db.DB.Where("pet_id = ?", pet.ID).Find(&watches).Error; err != nil {
		return
	}
	for _, w := range watches {
		if w.UserID == pet.UserID {
			continue
		}
		notification := models.Notification{
			UserID: w.UserID,
			Type:   models.NotificationTypePetFound,
			Reason: fmt.Sprintf("Good news: %s has been found!", pet.Name),
		}
		db.DB.Create(&notification)
	}
}

// UploadPhoto pushes a photo through the Imgur gateway and attaches the
// resulting URL to the pet.
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	user := CurrentUser(c)

	var pet models.Pet
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}
	if pet.UserID != user.ID {
		Fail(c, http.StatusForbidden, "not your pet")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		Fail(c, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	result, err := services.UploadPetPhoto(file, header)
	if err != nil {
		Fail(c, http.StatusBadGateway, "photo upload failed")
		return
	}

	if err := db.DB.Model(&pet).UpdateColumn("photo_url", result.URL).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	OK(c, gin.H{"photoUrl": result.URL})
}

// Contact lets a finder reach the owner of a lost pet: a notification
// row plus a best-effort email relay.
func (h *PetHandler) Contact(c *gin.Context) {
	user := CurrentUser(c)

	var pet models.Pet
	if err := db.DB.Preload("User").Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}
	if pet.UserID == user.ID {
		Fail(c, http.StatusBadRequest, "this is your own pet")
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		Fail(c, http.StatusBadRequest, "message is required")
		return
	}

	notification := models.Notification{
		UserID:  pet.UserID,
		ActorID: &user.ID,
		Type:    models.NotificationTypeContactOwner,
		Reason:  fmt.Sprintf("%s sent a message about %s: %s", user.Username, pet.Name, req.Message),
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.mailService.SendContactOwnerEmail(pet.User.Email, pet.Name, user.Username, user.Email, req.Message)

	OK(c, nil)
}

// ToggleWatch subscribes/unsubscribes the caller to a pet's updates.
func (h *PetHandler) ToggleWatch(c *gin.Context) {
	user := CurrentUser(c)

	var pet models.Pet
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&pet).Error; err != nil {
		Fail(c, http.StatusNotFound, "pet not found")
		return
	}

	var existing models.Watch
	err := db.DB.Where("user_id = ? AND pet_id = ?", user.ID, pet.ID).First(&existing).Error
	if err == nil {
		if err := db.DB.Delete(&existing).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		OK(c, gin.H{"watching": false})
		return
	}

	watch := models.Watch{UserID: user.ID, PetID: pet.ID}
	if err := db.DB.Create(&watch).Error; err != nil {
		// unique (user_id, pet_id): a concurrent toggle already created it
		OK(c, gin.H{"watching": true})
		return
	}
	OK(c, gin.H{"watching": true})
}
