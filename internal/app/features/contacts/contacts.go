// internal/app/features/contacts/contacts.go
package contacts

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	contactstore "github.com/dalemusser/stratacms/internal/app/store/contacts"
	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/inputval"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/mailer"
	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "Contact not found"

// Sender delivers email without blocking the caller. *mailer.Mailer
// satisfies it.
type Sender interface {
	SendAsync(ctx context.Context, email mailer.Email) <-chan struct{}
}

// Firm holds the details quoted in contact emails.
type Firm struct {
	Name       string
	Phone      string
	Address    string
	AdminEmail string // receives new-submission alerts; empty disables them
}

// Handler accepts contact-form submissions and serves the admin inbox.
type Handler struct {
	store       *contactstore.Store
	mail        Sender
	firm        Firm
	auditLogger *auditlog.Logger
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new contacts Handler. mail may be nil.
func NewHandler(
	db *mongo.Database,
	mail Sender,
	firm Firm,
	auditLogger *auditlog.Logger,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:       contactstore.New(db),
		mail:        mail,
		firm:        firm,
		auditLogger: auditLogger,
		errLog:      errLog,
		logger:      logger,
	}
}

// --- Public ---

type contactForm struct {
	Name    string `json:"name" validate:"required,max=100" label:"Name" msg:"Please fill all required fields"`
	Email   string `json:"email" validate:"required,email" label:"Email" msg:"Please fill all required fields"`
	Phone   string `json:"phone" validate:"max=20" label:"Phone"`
	Subject string `json:"subject" validate:"required,max=200" label:"Subject" msg:"Please fill all required fields"`
	Message string `json:"message" validate:"required,max=5000" label:"Message" msg:"Please fill all required fields"`
}

func (f *contactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = normalize.Email(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// submit serves POST /api/contact.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var form contactForm
	if err := jsonutil.Decode(r, &form); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	form.trim()

	if res := inputval.Validate(form); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	c, err := h.store.Create(r.Context(), contactstore.CreateInput{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		h.errLog.Log(r, "failed to store contact submission", err)
		jsonutil.InternalError(w, "Failed to submit form. Please try again.")
		return
	}

	h.notify(context.WithoutCancel(r.Context()), form, c.ID.Hex(), c.CreatedAt)

	jsonutil.Respond(w, http.StatusCreated, jsonutil.Fields{
		"message": "Thank you for contacting us. We will get back to you soon!",
		"data":    map[string]string{"id": c.ID.Hex()},
	})
}

// notify queues the visitor acknowledgement and the admin alert. Delivery
// failures are logged by the mailer and never affect the response.
func (h *Handler) notify(ctx context.Context, form contactForm, id string, at time.Time) {
	if h.mail == nil {
		return
	}

	subject, text, html := mailer.ContactConfirmationEmail(mailer.ContactConfirmationData{
		FirmName: h.firm.Name,
		Name:     form.Name,
		Subject:  form.Subject,
		Phone:    h.firm.Phone,
		Address:  h.firm.Address,
	})
	h.mail.SendAsync(ctx, mailer.Email{
		To:       form.Email,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})

	if h.firm.AdminEmail == "" {
		return
	}
	subject, text, html = mailer.ContactNotificationEmail(mailer.ContactNotificationData{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Subject:     form.Subject,
		Message:     form.Message,
		SubmittedAt: at,
		ContactID:   id,
	})
	h.mail.SendAsync(ctx, mailer.Email{
		To:       h.firm.AdminEmail,
		ReplyTo:  form.Email,
		FromName: "Website Contact Form",
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
}

// --- Admin ---

// list serves GET /api/admin/contacts, newest first, with the unread total.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 20)

	p, err := h.store.List(r.Context(), page)
	if err != nil {
		h.errLog.Log(r, "failed to list contacts", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	unread, err := h.store.CountUnread(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to count unread contacts", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	jsonutil.Paged(w, p.Items, jsonutil.Pagination{
		Count: len(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
	}, jsonutil.Fields{"unreadCount": unread})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	c, err := h.store.MarkRead(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "failed to mark contact read", err)
		return
	}
	h.auditLogger.Updated(r, audit.EntityContact, c.ID.Hex(), c.Subject)
	jsonutil.OK(w, c)
}

type updateRequest struct {
	IsRead    *bool   `json:"isRead"`
	IsReplied *bool   `json:"isReplied"`
	Notes     *string `json:"notes"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	var req updateRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.store.Update(r.Context(), id, contactstore.UpdateInput{
		IsRead:    req.IsRead,
		IsReplied: req.IsReplied,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeStoreError(w, r, "failed to update contact", err)
		return
	}
	h.auditLogger.Updated(r, audit.EntityContact, c.ID.Hex(), c.Subject)
	jsonutil.DataMessage(w, c, "Contact updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "failed to delete contact", err)
		return
	}
	h.auditLogger.Deleted(r, audit.EntityContact, id.Hex())
	jsonutil.Message(w, "Contact deleted successfully")
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, contactstore.ErrNotFound) {
		jsonutil.NotFound(w, notFound)
		return
	}
	h.errLog.Log(r, msg, err)
	jsonutil.InternalError(w, errorsfeature.ServerError)
}
