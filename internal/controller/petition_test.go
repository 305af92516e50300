package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error response %q: %v", w.Body.String(), err)
	}

	fields := make([]string, 0, len(envelope.Errors))
	for _, apiErr := range envelope.Errors {
		fields = append(fields, apiErr.Field)
	}
	return fields
}

func createPetition(t *testing.T, r *gin.Engine, body gin.H) model.Petition {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/v1/petitions", body, nil)
	mustHaveStatus(t, w, http.StatusCreated)
	return decodePetition(t, w)
}

func TestCreatePetitionDefaults(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	petition := createPetition(t, r, gin.H{
		"title":       "Ciclovia na Avenida Central",
		"description": "Queremos uma ciclovia segura",
		"goal":        100,
	})

	assert.NotEmpty(t, petition.ID)
	assert.Equal(t, constant.PetitionStatusDraft, petition.Status)
	assert.Equal(t, constant.DefaultPrimaryColor, petition.PrimaryColor)
	assert.False(t, petition.RequireCpf)
	assert.False(t, petition.RequirePhone)
}

func TestCreatePetitionRejectsNonPositiveGoal(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodPost, "/api/v1/petitions", gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        -5,
	}, nil)

	mustHaveStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeErrorFields(t, w), "goal")
}

func TestCreatePetitionPublishedNeedsSlug(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodPost, "/api/v1/petitions", gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"status":      "published",
	}, nil)

	mustHaveStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeErrorFields(t, w), "slug")
}

func TestCreatePetitionDuplicateSlug(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	createPetition(t, r, gin.H{
		"title":       "First",
		"description": "First petition",
		"goal":        100,
		"slug":        "ciclovia",
	})

	w := performRequest(r, http.MethodPost, "/api/v1/petitions", gin.H{
		"title":       "Second",
		"description": "Second petition",
		"goal":        100,
		"slug":        "ciclovia",
	}, nil)

	mustHaveStatus(t, w, http.StatusConflict)
}

func TestListPetitionsUnknownSort(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodGet, "/api/v1/petitions?sort=evil_column", nil, nil)
	mustHaveStatus(t, w, http.StatusBadRequest)
}

func TestGetPetitionBySlug(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia-central",
	})

	w := performRequest(r, http.MethodGet, "/api/v1/petitions/ciclovia-central", nil, nil)
	mustHaveStatus(t, w, http.StatusOK)
	assert.Equal(t, created.ID, decodePetition(t, w).ID)

	w = performRequest(r, http.MethodGet, "/api/v1/petitions/no-such-slug", nil, nil)
	mustHaveStatus(t, w, http.StatusNotFound)
}

func TestUpdatePetitionPartial(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Original",
		"description": "Original description",
		"goal":        100,
		"slug":        "original",
	})

	w := performRequest(r, http.MethodPatch, "/api/v1/petitions/"+created.ID, gin.H{
		"title": "Renamed",
	}, nil)

	mustHaveStatus(t, w, http.StatusOK)
	updated := decodePetition(t, w)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original", updated.Slug)
	assert.Equal(t, 100, updated.Goal)
}

func TestUpdatePetitionEmptyBody(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Original",
		"description": "Original description",
		"goal":        100,
	})

	w := performRequest(r, http.MethodPatch, "/api/v1/petitions/"+created.ID, gin.H{}, nil)
	mustHaveStatus(t, w, http.StatusBadRequest)
}

func TestUpdatePetitionNotFound(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodPatch, "/api/v1/petitions/e0f9ef90-0000-4000-8000-000000000000", gin.H{
		"title": "Renamed",
	}, nil)
	mustHaveStatus(t, w, http.StatusNotFound)
}

func TestUpdatePetitionCannotPublishWithoutSlug(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Original",
		"description": "Original description",
		"goal":        100,
	})

	w := performRequest(r, http.MethodPatch, "/api/v1/petitions/"+created.ID, gin.H{
		"status": "published",
	}, nil)
	mustHaveStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeErrorFields(t, w), "slug")
}

func TestPetitionQRCode(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	w := performRequest(r, http.MethodGet, "/api/v1/petitions/ciclovia/qrcode", nil, nil)
	mustHaveStatus(t, w, http.StatusOK)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestExportPetitionSignaturesCSV(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	w := performRequest(r, http.MethodPost, "/api/v1/petitions/"+created.ID+"/signatures", gin.H{
		"full_name": "Maria Silva",
		"email":     "maria@example.com",
	}, nil)
	mustHaveStatus(t, w, http.StatusCreated)

	w = performRequest(r, http.MethodGet, "/api/v1/petitions/ciclovia/signatures/export", nil, nil)
	mustHaveStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "signatures_ciclovia.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "full_name")
	assert.Contains(t, lines[1], "maria@example.com")
}
