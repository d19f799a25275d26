// internal/app/features/blogs/blogs.go
package blogs

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	blogstore "github.com/dalemusser/stratacms/internal/app/store/blogs"
	categorystore "github.com/dalemusser/stratacms/internal/app/store/categories"
	"github.com/dalemusser/stratacms/internal/app/store/storeutil"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/formutil"
	"github.com/dalemusser/stratacms/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratacms/internal/app/system/inputval"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/normalize"
	"github.com/dalemusser/stratacms/internal/app/system/uploads"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "Blog not found"

// Handler serves published blogs and the admin blog editor.
type Handler struct {
	store          *blogstore.Store
	categories     *categorystore.Store
	auditLogger    *auditlog.Logger
	errLog         *errorsfeature.ErrorLogger
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new blogs Handler.
func NewHandler(
	db *mongo.Database,
	auditLogger *auditlog.Logger,
	errLog *errorsfeature.ErrorLogger,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:          blogstore.New(db),
		categories:     categorystore.New(db, logger),
		auditLogger:    auditLogger,
		errLog:         errLog,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func writePage(w http.ResponseWriter, p storeutil.Page[models.Blog]) {
	jsonutil.Paged(w, p.Items, jsonutil.Pagination{
		Count: len(p.Items),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
	}, nil)
}

// --- Public ---

type categoryName struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// listCategories serves GET /api/blogs/categories: active blog categories,
// names only.
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context(), categorystore.ListOptions{
		Type:       models.CategoryTypeBlog,
		ActiveOnly: true,
	})
	if err != nil {
		h.errLog.Log(r, "failed to list blog categories", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	out := make([]categoryName, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryName{ID: c.ID, Name: c.Name})
	}
	jsonutil.OK(w, out)
}

// list serves GET /api/blogs: published posts, featured first, without
// their content. "All" is the same as no category.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 9)

	category := normalize.CategoryFilter(query.Get(r, "category"))

	p, err := h.store.List(r.Context(), blogstore.ListOptions{
		PublishedOnly:  true,
		Category:       category,
		FeaturedFirst:  true,
		ExcludeContent: true,
	}, page)
	if err != nil {
		h.errLog.Log(r, "failed to list blogs", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	writePage(w, p)
}

// showBySlug serves GET /api/blogs/{slug} and counts the view.
func (h *Handler) showBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.ViewPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeStoreError(w, r, "failed to load blog", err)
		return
	}
	jsonutil.OK(w, b)
}

// --- Admin ---

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	page := storeutil.PageFromRequest(r, 10)

	p, err := h.store.List(r.Context(), blogstore.ListOptions{ExcludeContent: true}, page)
	if err != nil {
		h.errLog.Log(r, "failed to list blogs", err)
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
	b, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "failed to load blog", err)
		return
	}
	jsonutil.OK(w, b)
}

type blogForm struct {
	Title   string `json:"title" validate:"required" label:"Blog title"`
	Excerpt string `json:"excerpt" validate:"required,max=300" label:"Blog excerpt"`
	Content string `json:"content" validate:"required" label:"Blog content"`
	Author  string `json:"author" validate:"required" label:"Author name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	files, err := uploads.ParseForm(w, r, 1, h.maxUploadBytes)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	form := blogForm{
		Title:   formutil.Value(r, "title"),
		Excerpt: formutil.Value(r, "excerpt"),
		Content: htmlsanitize.Clean(r.PostForm.Get("content")),
		Author:  formutil.Value(r, "author"),
	}
	if res := inputval.Validate(form); res.HasErrors() {
		jsonutil.ValidationError(w, res.First(), res.Fields())
		return
	}

	b, err := h.store.Create(r.Context(), blogstore.CreateInput{
		Title:       form.Title,
		Excerpt:     form.Excerpt,
		Content:     form.Content,
		Image:       files.Image("image"),
		Author:      form.Author,
		Category:    formutil.Value(r, "category"),
		IsPublished: flagOr(formutil.Bool(r, "isPublished"), true),
		IsFeatured:  flagOr(formutil.Bool(r, "isFeatured"), false),
	})
	if err != nil {
		h.writeStoreError(w, r, "failed to create blog", err)
		return
	}

	h.auditLogger.Created(r, audit.EntityBlog, b.ID.Hex(), b.Title)
	jsonutil.Created(w, b, "Blog created successfully")
}

// update applies a partial edit. Blank text fields keep the stored value;
// a new image replaces the old one.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	files, err := uploads.ParseForm(w, r, 1, h.maxUploadBytes)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}

	in := blogstore.UpdateInput{
		Title:       formutil.NonEmpty(r, "title"),
		Excerpt:     formutil.NonEmpty(r, "excerpt"),
		Author:      formutil.NonEmpty(r, "author"),
		Category:    formutil.NonEmpty(r, "category"),
		IsPublished: formutil.Bool(r, "isPublished"),
		IsFeatured:  formutil.Bool(r, "isFeatured"),
	}
	if in.Excerpt != nil && len(*in.Excerpt) > models.MaxExcerptLength {
		jsonutil.BadRequest(w, "Blog excerpt cannot exceed 300 characters")
		return
	}
	if c := formutil.NonEmpty(r, "content"); c != nil {
		if v := htmlsanitize.Clean(*c); v != "" {
			in.Content = &v
		}
	}

	in.Image = files.Image("image")

	b, err := h.store.Update(r.Context(), id, in)
	if err != nil {
		h.writeStoreError(w, r, "failed to update blog", err)
		return
	}

	h.auditLogger.Updated(r, audit.EntityBlog, b.ID.Hex(), b.Title)
	jsonutil.DataMessage(w, b, "Blog updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := errorsfeature.ObjectIDParam(w, r, "id", notFound)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, "failed to delete blog", err)
		return
	}
	h.auditLogger.Deleted(r, audit.EntityBlog, id.Hex())
	jsonutil.Message(w, "Blog deleted successfully")
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, blogstore.ErrNotFound):
		jsonutil.NotFound(w, notFound)
	case errors.Is(err, blogstore.ErrDuplicateSlug):
		jsonutil.Conflict(w, "A blog with this title already exists")
	case errors.Is(err, blogstore.ErrEmptySlug):
		jsonutil.BadRequest(w, "Blog title must contain letters or numbers")
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
	h.errLog.Log(r, "failed to read uploaded image", err)
	jsonutil.InternalError(w, errorsfeature.ServerError)
}

func flagOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
