// internal/app/features/services/services.go
package services

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	servicestore "github.com/dalemusser/stratacms/internal/app/store/services"
	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/formutil"
	"github.com/dalemusser/stratacms/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratacms/internal/app/system/inputval"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/uploads"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "Service not found"

// Handler serves the public service catalogue and its admin CRUD.
type Handler struct {
	store          *servicestore.Store
	auditLogger    *auditlog.Logger
	errLog         *errorsfeature.ErrorLogger
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new services Handler. maxUploadBytes bounds each
// uploaded image; zero uses the uploads default.
func NewHandler(
	db *mongo.Database,
	auditLogger *auditlog.Logger,
	errLog *errorsfeature.ErrorLogger,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:          servicestore.New(db),
		auditLogger:    auditLogger,
		errLog:         errLog,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func writePage(w http.ResponseWriter, p storeutil.Page[models.Service]) {
	jsonutil.Paged(w, p.Items, jsonutil.Pagination{
		Count: len(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
	}, nil)
}

// --- Public ---

// list serves GET /api/services. limit defaults to 0 (every service).
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 0)

	p, err := h.store.List(r.Context(), servicestore.ListOptions{
		ActiveOnly:       true,
		ExcludeImageData: true,
	}, page)
	if err != nil {
		h.errLog.Log(r, "failed to list services", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	writePage(w, p)
}

// showBySlug serves GET /api/services/{slug}; inactive services are hidden.
func (h *Handler) showBySlug(w http.ResponseWriter, r *http.Request) {
	svc, err := h.store.GetBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		h.writeStoreError(w, r, "failed to load service", err)
		return
	}
	jsonutil.OK(w, svc)
}

// --- Admin ---

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 10)

	p, err := h.store.List(r.Context(), servicestore.ListOptions{}, page)
	if err != nil {
		h.errLog.Log(r, "failed to list services", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	writePage(w, p)
}

func (h *Handler) adminShow(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	svc, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "failed to load service", err)
		return
	}
	jsonutil.OK(w, svc)
}

type serviceForm struct {
	Title            string `json:"title" validate:"required" label:"Service title"`
	ShortDescription string `json:"shortDescription" validate:"required,max=300" label:"Short description"`
}

// subServiceInput mirrors models.SubService with IsActive optional, so a
// sub-service sent without the flag stays active.
type subServiceInput struct {
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	ShortDescription string         `json:"shortDescription"`
	Content          string         `json:"content"`
	Images           []models.Image `json:"images"`
	IsActive         *bool          `json:"isActive"`
	Order            int            `json:"order"`
}

// parseSubServices reads the subServices and subServiceImages form fields.
// subServiceImages[i] replaces the images of sub-service i. base supplies
// the sub-services to attach images to when subServices was not sent.
// changed reports whether either field was present.
func parseSubServices(r *http.Request, base []models.SubService) (subs []models.SubService, changed bool, err error) {
	var in []subServiceInput
	sent, err := formutil.JSON(r, "subServices", &in)
	if err != nil {
		return nil, false, err
	}
	if sent {
		subs = make([]models.SubService, 0, len(in))
		for _, s := range in {
			if s.Title == "" {
				return nil, false, errors.New("Sub-service title is required")
			}
			if len(s.ShortDescription) > models.MaxExcerptLength {
				return nil, false, errors.New("Sub-service short description cannot exceed 300 characters")
			}
			active := true
			if s.IsActive != nil {
				active = *s.IsActive
			}
			subs = append(subs, models.SubService{
				Title:            s.Title,
				Slug:             s.Slug,
				ShortDescription: s.ShortDescription,
				Content:          htmlsanitize.Sanitize(s.Content),
				Images:           s.Images,
				IsActive:         active,
				Order:            s.Order,
			})
		}
	} else {
		subs = append([]models.SubService(nil), base...)
	}

	var imgs [][]models.Image
	imgsSent, err := formutil.JSON(r, "subServiceImages", &imgs)
	if err != nil {
		return nil, false, err
	}
	if imgsSent {
		for i := range subs {
			if i < len(imgs) {
				subs[i].Images = imgs[i]
			} else {
				subs[i].Images = []models.Image{}
			}
		}
	}
	return subs, sent || imgsSent, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	files, err := uploads.ParseForm(w, r, models.MaxServiceImages, h.maxUploadBytes)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	form := serviceForm{
		Title:            formutil.Value(r, "title"),
		ShortDescription: formutil.Value(r, "shortDescription"),
	}
	if res := inputval.Validate(form); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	subs, _, err := parseSubServices(r, nil)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	images := files.Images("images")

	svc, err := h.store.Create(r.Context(), servicestore.CreateInput{
		Title:            form.Title,
		ShortDescription: form.ShortDescription,
		Content:          htmlsanitize.Clean(r.PostForm.Get("content")),
		Icon:             formutil.Value(r, "icon"),
		Images:           images,
		SubServices:      subs,
		IsActive:         normalizeFlag(formutil.Bool(r, "isActive")),
		Order:            formutil.IntOr(r, "order", 0),
	})
	if err != nil {
		h.writeStoreError(w, r, "failed to create service", err)
		return
	}

	h.auditLogger.Created(r, audit.EntityService, svc.ID.Hex(), svc.Title)
	jsonutil.Created(w, svc, "Service created successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	files, err := uploads.ParseForm(w, r, models.MaxServiceImages, h.maxUploadBytes)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	current, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "failed to load service", err)
		return
	}

	in := servicestore.UpdateInput{
		Icon:     formutil.String(r, "icon"),
		IsActive: formutil.Bool(r, "isActive"),
		Order:    formutil.Int(r, "order"),
		Content:  sanitized(formutil.Raw(r, "content")),
	}

	// Title and short description are required, so an empty value keeps
	// the stored one.
	if t := formutil.String(r, "title"); t != nil && *t != "" {
		in.Title = t
	}
	if d := formutil.String(r, "shortDescription"); d != nil && *d != "" {
		if len(*d) > models.MaxExcerptLength {
			jsonutil.BadRequest(w, "Short description cannot exceed 300 characters")
			return
		}
		in.ShortDescription = d
	}

	subs, changed, err := parseSubServices(r, current.SubServices)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if changed {
		in.SubServices = &subs
	}

	added := files.Images("images")
	keptSent := formutil.Value(r, "existingImages") != ""
	kept, err := uploads.ParseImageList(r.PostForm.Get("existingImages"))
	if err != nil {
		jsonutil.BadRequest(w, uploads.ErrBadImageList.Error())
		return
	}
	if keptSent || len(added) > 0 {
		merged := uploads.Merge(kept, added, models.MaxServiceImages)
		in.Images = &merged
	}

	svc, err := h.store.Update(r.Context(), id, in)
	if err != nil {
		h.writeStoreError(w, r, "failed to update service", err)
		return
	}

	h.auditLogger.Updated(r, audit.EntityService, svc.ID.Hex(), svc.Title)
	jsonutil.DataMessage(w, svc, "Service updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "failed to delete service", err)
		return
	}
	h.auditLogger.Deleted(r, audit.EntityService, id.Hex())
	jsonutil.Message(w, "Service deleted successfully")
}

// Seed serves POST /api/admin/seed-services: the catalogue is replaced
// with the defaults.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ReplaceAll(r.Context(), servicestore.DefaultCatalogue())
	if err != nil {
		h.errLog.LogWithFields(r, "failed to seed services", err, zap.Int("inserted", n))
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	h.auditLogger.Seeded(r, audit.EntityService, int64(n))
	jsonutil.Respond(w, http.StatusOK, jsonutil.Fields{
		"message": "Services seeded successfully",
		"count":   n,
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, servicestore.ErrNotFound):
		jsonutil.NotFound(w, notFound)
	case errors.Is(err, servicestore.ErrDuplicateSlug):
		jsonutil.Conflict(w, "A service with this title already exists")
	case errors.Is(err, servicestore.ErrEmptySlug):
		jsonutil.BadRequest(w, "Service title must contain letters or numbers")
	default:
		h.errLog.Log(r, msg, err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
	}
}

func (h *Handler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	if uploads.IsClientError(err) {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	h.errLog.Log(r, "failed to read uploaded images", err)
	jsonutil.InternalError(w, errorsfeature.ServerError)
}

// normalizeFlag treats an absent flag as true.
func normalizeFlag(b *bool) bool {
	return b == nil || *b
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	v := htmlsanitize.Sanitize(*s)
	return &v
}
