package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"contactly-be/internal/entities"
	"contactly-be/internal/logger"
	"contactly-be/internal/middleware"
	"contactly-be/internal/service"
	"contactly-be/internal/vcard"
)

const qrCodeSize = 256

// qrRenderings are tried in order until the payload fits in a QR symbol
var qrRenderings = []struct {
	encode func(*entities.Contact) string
	level  qrcode.RecoveryLevel
}{
	{vcard.Encode, qrcode.Medium},
	{vcard.Encode, qrcode.Low},
	{vcard.EncodeCompact, qrcode.Medium},
	{vcard.EncodeCompact, qrcode.Low},
}

func newContactQRCode(contact *entities.Contact) (qrCode *qrcode.QRCode, err error) {
	for _, r := range qrRenderings {
		if qrCode, err = qrcode.New(r.encode(contact), r.level); err == nil {
			return qrCode, nil
		}
	}
	return nil, err
}

type QRCodeController struct {
	contactService service.ContactService
	log            *logger.Logger
}

func NewQRCodeController(contactService service.ContactService, log *logger.Logger) *QRCodeController {
	return &QRCodeController{
		contactService: contactService,
		log:            log,
	}
}

// GenerateQRCode handles GET /api/contact/:id/qrcode - renders the contact's vCard as a QR code
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	contact, err := qc.contactService.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, qc.log, err)
		return
	}

	qrCode, err := newContactQRCode(contact)
	if err != nil {
		qc.log.Warn("contact does not fit in a QR code", "contact_id", contact.ID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Contact is too large for a QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		qc.log.Error("failed to encode QR code", "contact_id", contact.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=contact.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
