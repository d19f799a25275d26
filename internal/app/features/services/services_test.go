package services

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	servicestore "github.com/dalemusser/stratacms/internal/app/store/services"
	"github.com/dalemusser/stratacms/internal/domain/models"
	"github.com/dalemusser/stratacms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *servicestore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, nil, nil, 0, zap.NewNop())
	return h, servicestore.New(db)
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func pngFile(name string) testutil.File {
	return testutil.File{Field: "images", Name: name, Data: testutil.PNG}
}

func TestPublicList_ActiveOnlyWithoutImageData(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	img := models.Image{Data: "aGVsbG8=", ContentType: "image/png"}
	store.Create(ctx, servicestore.CreateInput{Title: "Audit", IsActive: true, Images: []models.Image{img}})
	store.Create(ctx, servicestore.CreateInput{Title: "Hidden", IsActive: false})

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var items []models.Service
	env := rec.DecodeData(t, &items)
	if len(items) != 1 || items[0].Title != "Audit" {
		t.Fatalf("items = %+v", items)
	}
	if *env.Total != 1 || *env.Page != 1 || *env.Pages != 1 || *env.Count != 1 {
		t.Errorf("pagination = total %d page %d pages %d count %d", *env.Total, *env.Page, *env.Pages, *env.Count)
	}
	if len(items[0].Images) != 1 || items[0].Images[0].Data != "" {
		t.Errorf("list should omit image data, got %+v", items[0].Images)
	}
}

func TestPublicShow_InactiveIsNotFound(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, servicestore.CreateInput{Title: "Draft Service", IsActive: false})

	rec := serve(Routes(h), testutil.NewRequest(http.MethodGet, "/draft-service"))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Service not found")
}

func TestCreate_DerivesSlugWithoutImages(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewMultipartRequest(http.MethodPost, "/", map[string]string{
		"title":            "Audit Services",
		"shortDescription": "Statutory and internal audits.",
	})
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusCreated)

	var svc models.Service
	env := rec.DecodeData(t, &svc)
	if env.Message != "Service created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if svc.Slug != "audit-services" {
		t.Errorf("slug = %q, want audit-services", svc.Slug)
	}
	if svc.Images == nil || len(svc.Images) != 0 {
		t.Errorf("images = %v, want empty list", svc.Images)
	}
	if svc.Icon != models.DefaultServiceIcon || !svc.IsActive {
		t.Errorf("defaults not applied: icon %q active %v", svc.Icon, svc.IsActive)
	}
}

func TestCreate_KeepsFirstThreeImages(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewMultipartRequest(http.MethodPost, "/", map[string]string{
		"title":            "Tax Filing",
		"shortDescription": "Returns.",
	}, pngFile("1.png"), pngFile("2.png"), pngFile("3.png"), pngFile("4.png"), pngFile("5.png"))
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusCreated)

	var svc models.Service
	rec.DecodeData(t, &svc)
	if len(svc.Images) != models.MaxServiceImages {
		t.Errorf("len(images) = %d, want %d", len(svc.Images), models.MaxServiceImages)
	}
	if svc.Image == nil || svc.Image.Data != svc.Images[0].Data {
		t.Error("legacy image should mirror images[0]")
	}
}

func TestCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		fields map[string]string
		files  []testutil.File
		want   string
	}{
		{"missing title", map[string]string{"shortDescription": "x"}, nil, "Service title is required"},
		{"long description", map[string]string{"title": "T", "shortDescription": strings.Repeat("a", 301)}, nil, "cannot exceed 300"},
		{"not an image", map[string]string{"title": "T", "shortDescription": "x"},
			[]testutil.File{{Field: "images", Name: "a.txt", Data: []byte("plain text, not an image")}}, "Only image files are allowed"},
		{"bad sub-services", map[string]string{"title": "T", "shortDescription": "x", "subServices": "["}, nil, "subServices must be valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPost, "/", tt.fields, tt.files...))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestCreate_DuplicateTitleConflicts(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, servicestore.CreateInput{Title: "GST Filing Services", IsActive: true})

	req := testutil.NewMultipartRequest(http.MethodPost, "/", map[string]string{
		"title":            "GST Filing Services",
		"shortDescription": "Again.",
	})
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "already exists")
}

func TestCreate_SubServices(t *testing.T) {
	h, _ := newTestHandler(t)

	subs, _ := json.Marshal([]map[string]any{
		{"title": "GST Registration", "shortDescription": "Register.", "content": "<p>ok</p><script>x</script>"},
		{"title": "GST Returns", "shortDescription": "File.", "isActive": false},
	})
	imgs, _ := json.Marshal([][]models.Image{{{Data: "AAA=", ContentType: "image/png"}}})

	req := testutil.NewMultipartRequest(http.MethodPost, "/", map[string]string{
		"title":            "Goods and Service Tax",
		"shortDescription": "GST.",
		"subServices":      string(subs),
		"subServiceImages": string(imgs),
	})
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusCreated)

	var svc models.Service
	rec.DecodeData(t, &svc)
	if len(svc.SubServices) != 2 {
		t.Fatalf("sub-services = %+v", svc.SubServices)
	}
	first, second := svc.SubServices[0], svc.SubServices[1]
	if first.Slug != "gst-registration" || !first.IsActive || len(first.Images) != 1 {
		t.Errorf("first = %+v", first)
	}
	if strings.Contains(first.Content, "script") {
		t.Errorf("content not sanitized: %q", first.Content)
	}
	if second.IsActive || len(second.Images) != 0 {
		t.Errorf("second = %+v", second)
	}
}

func TestUpdate_ShortDescriptionKeepsSlug(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, _ := store.Create(ctx, servicestore.CreateInput{Title: "GST Filing Services", ShortDescription: "old", IsActive: true})

	req := testutil.NewMultipartRequest(http.MethodPut, "/"+svc.ID.Hex(), map[string]string{
		"shortDescription": "new",
		"isActive":         "false",
		"order":            "0",
	})
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.Service
	rec.DecodeData(t, &got)
	if got.Slug != "gst-filing-services" || got.ShortDescription != "new" {
		t.Errorf("got slug %q description %q", got.Slug, got.ShortDescription)
	}
	if got.IsActive {
		t.Error("explicit false should overwrite isActive")
	}
}

func TestUpdate_ImageMerge(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := models.Image{Data: "QQ==", ContentType: "image/png"}
	b := models.Image{Data: "Qg==", ContentType: "image/png"}
	svc, _ := store.Create(ctx, servicestore.CreateInput{Title: "Audit", Images: []models.Image{a, b}, IsActive: true})

	// No image fields: untouched.
	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPut, "/"+svc.ID.Hex(), map[string]string{"icon": "Shield"}))
	rec.AssertStatus(t, http.StatusOK)
	var got models.Service
	rec.DecodeData(t, &got)
	if len(got.Images) != 2 {
		t.Fatalf("images without image fields = %d, want 2", len(got.Images))
	}

	// Keep b, add two uploads: b first, capped at three.
	kept, _ := json.Marshal([]models.Image{b})
	req := testutil.NewMultipartRequest(http.MethodPut, "/"+svc.ID.Hex(),
		map[string]string{"existingImages": string(kept)}, pngFile("n1.png"), pngFile("n2.png"), pngFile("n3.png"))
	rec = serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeData(t, &got)
	if len(got.Images) != 3 || got.Images[0].Data != b.Data {
		t.Errorf("merged images = %+v", got.Images)
	}

	// Empty keep list and no uploads: cleared.
	rec = serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPut, "/"+svc.ID.Hex(), map[string]string{"existingImages": "[]"}))
	rec.AssertStatus(t, http.StatusOK)
	got = models.Service{}
	rec.DecodeData(t, &got)
	if len(got.Images) != 0 || got.Image != nil {
		t.Errorf("images after clearing = %+v, legacy %v", got.Images, got.Image)
	}
}

func TestCreate_SurplusLargeUploadsKeepFirstThree(t *testing.T) {
	const perFile = 1 << 20
	h := NewHandler(testutil.SetupTestDB(t), nil, nil, perFile, zap.NewNop())

	// Each file is within the limit; five of them are well past three
	// files' worth.
	big := make([]byte, perFile-100<<10)
	copy(big, testutil.PNG)
	var files []testutil.File
	for _, name := range []string{"1.png", "2.png", "3.png", "4.png", "5.png"} {
		files = append(files, testutil.File{Field: "images", Name: name, Data: big})
	}
	req := testutil.NewMultipartRequest(http.MethodPost, "/", map[string]string{
		"title":            "Audit Services",
		"shortDescription": "Statutory audits.",
	}, files...)
	rec := serve(AdminRoutes(h), req)
	rec.AssertStatus(t, http.StatusCreated)

	var svc models.Service
	rec.DecodeData(t, &svc)
	if len(svc.Images) != models.MaxServiceImages {
		t.Errorf("len(images) = %d, want %d", len(svc.Images), models.MaxServiceImages)
	}
}

func TestUpdate_BadExistingImages(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, _ := store.Create(ctx, servicestore.CreateInput{Title: "Audit", IsActive: true})
	rec := serve(AdminRoutes(h), testutil.NewMultipartRequest(http.MethodPut, "/"+svc.ID.Hex(),
		map[string]string{"existingImages": "[{"}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "existingImages must be valid JSON")
}

func TestAdminByID_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{"/not-an-id", "/64b7f0c2a1b2c3d4e5f60718"} {
		for _, method := range []string{http.MethodGet, http.MethodDelete} {
			rec := serve(AdminRoutes(h), testutil.NewRequest(method, target))
			rec.AssertStatus(t, http.StatusNotFound)
			rec.AssertContains(t, "Service not found")
		}
	}
}

func TestDelete(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc, _ := store.Create(ctx, servicestore.CreateInput{Title: "Gone", IsActive: true})

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodDelete, "/"+svc.ID.Hex()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Service deleted successfully")

	if _, err := store.GetByID(ctx, svc.ID); err != servicestore.ErrNotFound {
		t.Errorf("GetByID after delete err = %v", err)
	}
}

func TestAdminList_DefaultsToTenPerPage(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 12; i++ {
		store.Create(ctx, servicestore.CreateInput{Title: "Service " + string(rune('A'+i)), IsActive: i%2 == 0})
	}

	rec := serve(AdminRoutes(h), testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)
	var items []models.Service
	env := rec.DecodeData(t, &items)
	if len(items) != 10 || *env.Total != 12 || *env.Pages != 2 {
		t.Errorf("len %d total %d pages %d", len(items), *env.Total, *env.Pages)
	}
}

func TestSeed(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, servicestore.CreateInput{Title: "Custom", IsActive: true})

	rec := testutil.NewRecorder()
	h.Seed(rec, testutil.NewRequest(http.MethodPost, "/seed-services"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Services seeded successfully")

	n, _ := store.Count(ctx)
	if n != int64(len(servicestore.DefaultCatalogue())) {
		t.Errorf("Count() = %d after seeding", n)
	}
	if _, err := store.GetBySlug(ctx, "custom", false); err != servicestore.ErrNotFound {
		t.Error("seeding should replace existing services")
	}
}
