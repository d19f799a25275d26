// internal/app/features/aboutus/aboutus.go
package aboutus

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratacms/internal/app/features/errors"
	"github.com/dalemusser/stratacms/internal/app/store/audit"
	aboutusstore "github.com/dalemusser/stratacms/internal/app/store/aboutus"
	"github.com/dalemusser/stratacms/internal/app/system/auditlog"
	"github.com/dalemusser/stratacms/internal/app/system/formutil"
	"github.com/dalemusser/stratacms/internal/app/system/jsonutil"
	"github.com/dalemusser/stratacms/internal/app/system/uploads"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the About Us page content.
type Handler struct {
	store          *aboutusstore.Store
	auditLogger    *auditlog.Logger
	errLog         *errorsfeature.ErrorLogger
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new About Us Handler.
func NewHandler(
	db *mongo.Database,
	auditLogger *auditlog.Logger,
	errLog *errorsfeature.ErrorLogger,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		store:          aboutusstore.New(db),
		auditLogger:    auditLogger,
		errLog:         errLog,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// show serves GET /api/aboutus. Before an admin has saved anything the
// defaults are returned without being stored.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	doc, _, err := h.store.Get(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load about us", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.OK(w, doc)
}

// adminShow serves GET /api/admin/aboutus, storing the defaults first
// when needed so the editor always works on a real document.
func (h *Handler) adminShow(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.EnsureDefault(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load about us", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}
	jsonutil.OK(w, doc)
}

// update serves PUT /api/admin/aboutus. Any text field that is sent
// overwrites, list fields arrive as JSON, and the i-th teamImages file
// becomes the photo of team member i.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	files, err := uploads.ParseForm(w, r, models.MaxTeamImages, h.maxUploadBytes)
	if err != nil {
		if uploads.IsClientError(err) {
			jsonutil.BadRequest(w, err.Error())
			return
		}
		h.errLog.Log(r, "failed to read about us form", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	in := aboutusstore.UpdateInput{
		HeroTitle:        formutil.String(r, "heroTitle"),
		HeroSubtitle:     formutil.String(r, "heroSubtitle"),
		StoryTitle:       formutil.String(r, "storyTitle"),
		StoryContent:     formutil.String(r, "storyContent"),
		MissionTitle:     formutil.String(r, "missionTitle"),
		MissionContent:   formutil.String(r, "missionContent"),
		VisionTitle:      formutil.String(r, "visionTitle"),
		VisionContent:    formutil.String(r, "visionContent"),
		TeamTitle:        formutil.String(r, "teamTitle"),
		TeamSubtitle:     formutil.String(r, "teamSubtitle"),
		WhyChooseUsTitle: formutil.String(r, "whyChooseUsTitle"),
		Address:          formutil.String(r, "address"),
		Phone:            formutil.String(r, "phone"),
		Email:            formutil.String(r, "email"),
		WorkingHours:     formutil.String(r, "workingHours"),
	}

	var (
		coreValues   []models.CoreValue
		teamMembers  []models.TeamMember
		points       []models.WhyChooseUsPoint
		serviceAreas []models.ServiceArea
	)
	lists := []struct {
		key string
		dst any
		set func()
	}{
		{"coreValues", &coreValues, func() { in.CoreValues = &coreValues }},
		{"teamMembers", &teamMembers, func() { in.TeamMembers = &teamMembers }},
		{"whyChooseUsPoints", &points, func() { in.WhyChooseUsPoints = &points }},
		{"serviceAreas", &serviceAreas, func() { in.ServiceAreas = &serviceAreas }},
	}
	for _, l := range lists {
		sent, err := formutil.JSON(r, l.key, l.dst)
		if err != nil {
			jsonutil.BadRequest(w, err.Error())
			return
		}
		if sent {
			l.set()
		}
	}

	imgs := files.Images("teamImages")
	for i := range imgs {
		in.TeamImages = append(in.TeamImages, &imgs[i])
	}

	doc, err := h.store.Update(r.Context(), in)
	if err != nil {
		h.errLog.Log(r, "failed to update about us", err)
		jsonutil.InternalError(w, errorsfeature.ServerError)
		return
	}

	h.auditLogger.Updated(r, audit.EntityAboutUs, models.AboutUsID, "")
	jsonutil.DataMessage(w, doc, "About Us updated successfully")
}
