// internal/app/features/faqs/faqs.go
package faqs

import (
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	faqstore "github.com/dalemusser/stratacms/internal/app/store/faqs"
	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/inputval"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "FAQ not found"

// Handler serves the public FAQ page and the admin FAQ editor.
type Handler struct {
	store       *faqstore.Store
	auditLogger *auditlog.Logger
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new FAQs Handler.
func NewHandler(db *mongo.Database, auditLogger *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:       faqstore.New(db),
		auditLogger: auditLogger,
		errLog:      errLog,
		logger:      logger,
	}
}

// --- Public ---

// list serves GET /api/faq. The default FAQ set is installed the first
// time the collection is found empty.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if seeded, n, err := h.store.SeedIfEmpty(ctx); err != nil {
		h.errLog.Log(r, "failed to seed FAQs", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	} else if seeded {
		h.logger.Info("seeded default FAQs", zap.Int64("count", n))
	}

	faqs, err := h.store.List(ctx, faqstore.ListOptions{
		ActiveOnly: true,
		Category:   normalize.CategoryFilter(query.Get(r, "category")),
	})
	if err != nil {
		h.errLog.Log(r, "failed to list FAQs", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	grouped := faqstore.GroupByCategory(faqs)
	jsonutil.Respond(w, http.StatusOK, jsonutil.Fields{
		"data":       faqs,
		"grouped":    grouped,
		"categories": grouped.Categories(),
	})
}

// categoryCounts serves GET /api/faq/categories.
func (h *Handler) categoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.CategoryCounts(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to count FAQ categories", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.OK(w, counts)
}

// --- Admin ---

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 20)

	p, err := h.store.Page(r.Context(), faqstore.ListOptions{}, page)
	if err != nil {
		h.errLog.Log(r, "failed to list FAQs", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.Paged(w, p.Items, jsonutil.Pagination{
		Count: len(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
	}, nil)
}

func (h *Handler) adminShow(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	f, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "failed to load FAQ", err)
		return
	}
	jsonutil.OK(w, f)
}

// faqRequest is the JSON body of create and update. Pointers tell an
// omitted field from a zero one.
type faqRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Category *string `json:"category"`
	IsActive *bool   `json:"isActive"`
	Order    *int    `json:"order"`
}

type faqForm struct {
	Question string `json:"question" validate:"required" label:"Question"`
	Answer   string `json:"answer" validate:"required" label:"Answer"`
}

// text returns the trimmed value of p, or nil when p is absent or blank.
func text(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	form := faqForm{
		Question: deref(text(req.Question)),
		Answer:   deref(text(req.Answer)),
	}
	if res := inputval.Validate(form); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	in := faqstore.CreateInput{
		Question: form.Question,
		Answer:   form.Answer,
		Category: deref(text(req.Category)),
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if req.Order != nil {
		in.Order = *req.Order
	}

	f, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, r, "failed to create FAQ", err)
		return
	}

	h.auditLogger.Created(r, audit.EntityFAQ, f.ID.Hex(), f.Question)
	jsonutil.Created(w, f, "FAQ created successfully")
}

// update applies a partial edit: blank text keeps the stored value, while
// isActive and order overwrite whenever they are present.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	var req faqRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	f, err := h.store.Update(r.Context(), id, faqstore.UpdateInput{
		Question: text(req.Question),
		Answer:   text(req.Answer),
		Category: text(req.Category),
		IsActive: req.IsActive,
		Order:    req.Order,
	})
	if err != nil {
		h.writeStoreError(w, r, "failed to update FAQ", err)
		return
	}

	h.auditLogger.Updated(r, audit.EntityFAQ, f.ID.Hex(), f.Question)
	jsonutil.DataMessage(w, f, "FAQ updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "failed to delete FAQ", err)
		return
	}
	h.auditLogger.Deleted(r, audit.EntityFAQ, id.Hex())
	jsonutil.Message(w, "FAQ deleted successfully")
}

// Seed serves POST /api/admin/seed-faqs. Existing FAQs are left alone.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	seeded, n, err := h.store.SeedIfEmpty(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to seed FAQs", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	msg := "FAQs already exist"
	if seeded {
		msg = "FAQs seeded successfully"
		h.auditLogger.Seeded(r, audit.EntityFAQ, n)
	}
	jsonutil.Respond(w, http.StatusOK, jsonutil.Fields{
		"message": msg,
		"count":   n,
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, faqstore.ErrNotFound) {
		jsonutil.NotFound(w, notFound)
		return
	}
	h.errLog.Log(r, msg, err)
	jsonutil.InternalError(w, errorsfeature.ServerError)
}
