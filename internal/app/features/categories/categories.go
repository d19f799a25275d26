// internal/app/features/categories/categories.go
package categories

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	categorystore "github.com/dalemusser/stratacms/internal/app/store/categories"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/inputval"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "Category not found"

// Handler manages FAQ and blog categories. Renames cascade into the
// content that carries the name; deletes are refused while it is in use.
type Handler struct {
	store       *categorystore.Store
	auditLogger *auditlog.Logger
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new categories Handler.
func NewHandler(db *mongo.Database, auditLogger *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:       categorystore.New(db, logger),
		auditLogger: auditLogger,
		errLog:      errLog,
		logger:      logger,
	}
}

// list serves GET /api/admin/categories?type=faq|blog. A type with no
// categories is seeded with its defaults; no type lists everything.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	t := normalize.CategoryType(query.Get(r, "type"))
	cats, err := h.store.List(r.Context(), categorystore.ListOptions{Type: t})
	if err != nil {
		h.writeStoreError(w, r, "failed to list categories", err, "")
		return
	}
	jsonutil.OK(w, cats)
}

type categoryRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Icon     *string `json:"icon"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// trimmed normalizes p with normalize.Name; nil when absent or blank.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := normalize.Name(*p)
	if v == "" {
		return nil
	}
	return &v
}

type categoryForm struct {
	Name string `json:"name" validate:"required" label:"Name" msg:"Name and type are required"`
	Type string `json:"type" validate:"required,categorytype" label:"Type" msg:"Name and type are required"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	form := categoryForm{Name: deref(trimmed(req.Name)), Type: deref(trimmed(req.Type))}
	if res := inputval.Validate(form); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	in := categorystore.CreateInput{
		Name:     form.Name,
		Type:     normalize.CategoryType(form.Type),
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if icon := trimmed(req.Icon); icon != nil {
		in.Icon = *icon
	}
	if req.Order != nil {
		in.Order = *req.Order
	}

	c, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, r, "failed to create category", err, "Category already exists for this type")
		return
	}

	h.auditLogger.Created(r, audit.EntityCategory, c.ID.Hex(), c.Name)
	jsonutil.Created(w, c, "Category created successfully")
}

// update applies a partial edit. The type of a category never changes.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	var req categoryRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	c, err := h.store.Update(r.Context(), id, categorystore.UpdateInput{
		Name:     trimmed(req.Name),
		Icon:     trimmed(req.Icon),
		Order:    req.Order,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.writeStoreError(w, r, "failed to update category", err, "Category name already exists for this type")
		return
	}

	h.auditLogger.Updated(r, audit.EntityCategory, c.ID.Hex(), c.Name)
	jsonutil.DataMessage(w, c, "Category updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "failed to delete category", err, "")
		return
	}
	h.auditLogger.Deleted(r, audit.EntityCategory, id.Hex())
	jsonutil.Message(w, "Category deleted successfully")
}

// writeStoreError maps store failures. Duplicate names answer 400 with dup.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error, dup string) {
	var inUse *categorystore.InUseError
	switch {
	case errors.Is(err, categorystore.ErrNotFound):
		jsonutil.NotFound(w, notFound)
	case errors.Is(err, categorystore.ErrDuplicate):
		jsonutil.BadRequest(w, dup)
	case errors.Is(err, categorystore.ErrInvalidType):
		jsonutil.BadRequest(w, "Type must be faq or blog")
	case errors.As(err, &inUse):
		jsonutil.BadRequest(w, inUse.Error())
	default:
		h.errLog.Log(r, msg, err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
	}
}
