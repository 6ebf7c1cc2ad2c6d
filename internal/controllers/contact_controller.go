package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contactly-be/internal/logger"
	"contactly-be/internal/middleware"
	"contactly-be/internal/models"
	"contactly-be/internal/service"
)

type ContactController struct {
	contactService service.ContactService
	log            *logger.Logger
}

func NewContactController(contactService service.ContactService, log *logger.Logger) *ContactController {
	return &ContactController{
		contactService: contactService,
		log:            log,
	}
}

// Create handles POST /api/contact
func (cc *ContactController) Create(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	contact, err := cc.contactService.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// List handles GET /api/mycontacts
// Optional query: search, sort, order, favorite, page, limit
func (cc *ContactController) List(c *gin.Context) {
	opts := service.ListOptions{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}

	if v, ok := c.GetQuery("favorite"); ok {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "favorite must be true or false"})
			return
		}
		opts.Favorite = &fav
	}

	var ok bool
	if opts.Page, ok = positiveQuery(c, "page"); !ok {
		return
	}
	if opts.Limit, ok = positiveQuery(c, "limit"); !ok {
		return
	}

	resp, err := cc.contactService.List(c.Request.Context(), middleware.CurrentUserID(c), opts)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// positiveQuery reads an optional positive integer parameter, 0 when absent.
// It writes a 400 and returns false for anything else.
func positiveQuery(c *gin.Context, name string) (int, bool) {
	v, present := c.GetQuery(name)
	if !present {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive number"})
		return 0, false
	}
	return n, true
}

// Get handles GET /api/contact/:id
func (cc *ContactController) Get(c *gin.Context) {
	contact, err := cc.contactService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Update handles PUT /api/contact
func (cc *ContactController) Update(c *gin.Context) {
	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	contact, err := cc.contactService.Update(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/contact/:id
func (cc *ContactController) Delete(c *gin.Context) {
	err := cc.contactService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Contact deleted successfully!"})
}

// ToggleFavorite handles PATCH /api/favorite/:id
func (cc *ContactController) ToggleFavorite(c *gin.Context) {
	contacts, err := cc.contactService.ToggleFavorite(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, cc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.ContactListResponse{Contacts: contacts})
}
