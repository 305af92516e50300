package controller_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignPetitionStampsProvenance(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	created := createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	// client-supplied ip_address and user_agent must be discarded
	w := performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", gin.H{
		"full_name":  "Maria Silva",
		"email":      "maria@example.com",
		"ip_address": "1.2.3.4",
		"user_agent": "spoofed",
	}, map[string]string{
		"X-Forwarded-For": "203.0.113.9, 10.0.0.1",
		"User-Agent":      "Mozilla/5.0 (test)",
	})

	mustHaveStatus(t, w, http.StatusCreated)
	signature := decodeSignature(t, w)
	assert.Equal(t, created.ID, signature.PetitionID)
	assert.Equal(t, "203.0.113.9", signature.IpAddress)
	assert.Equal(t, "Mozilla/5.0 (test)", signature.UserAgent)
	assert.True(t, strings.HasPrefix(signature.Protocol, "PET-"))
	assert.True(t, signature.TermsAccepted)
	require.NotNil(t, signature.TermsAcceptedAt)
}

func TestSignPetitionRequireCpf(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
		"require_cpf": true,
	})

	w := performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", gin.H{
		"full_name": "Maria Silva",
		"email":     "maria@example.com",
	}, nil)
	mustHaveStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeErrorFields(t, w), "cpf")

	w = performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", gin.H{
		"full_name": "Maria Silva",
		"email":     "maria@example.com",
		"cpf":       "123.456.789-00",
	}, nil)
	mustHaveStatus(t, w, http.StatusCreated)
}

func TestSignPetitionDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	body := gin.H{
		"full_name": "Maria Silva",
		"email":     "maria@example.com",
	}

	w := performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", body, nil)
	mustHaveStatus(t, w, http.StatusCreated)

	w = performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", body, nil)
	mustHaveStatus(t, w, http.StatusConflict)
	assert.Contains(t, decodeErrorFields(t, w), "email")
}

func TestCreateSignatureUnknownPetition(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodPost, "/api/v1/signatures", gin.H{
		"petition_id": "e0f9ef90-0000-4000-8000-000000000000",
		"full_name":   "Maria Silva",
		"email":       "maria@example.com",
	}, nil)
	mustHaveStatus(t, w, http.StatusNotFound)
}

func TestCreateSignatureMissingPetitionID(t *testing.T) {
	r, _ := newTestRouter(t, 100)

	w := performRequest(r, http.MethodPost, "/api/v1/signatures", gin.H{
		"full_name": "Maria Silva",
		"email":     "maria@example.com",
	}, nil)
	mustHaveStatus(t, w, http.StatusBadRequest)
	assert.Contains(t, decodeErrorFields(t, w), "petition_id")
}

func TestSignPetitionRateLimited(t *testing.T) {
	r, app := newTestRouter(t, 3)

	created := createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	for i := 0; i < 3; i++ {
		w := performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", gin.H{
			"full_name": "Maria Silva",
			"email":     fmt.Sprintf("maria%d@example.com", i),
		}, nil)
		mustHaveStatus(t, w, http.StatusCreated)
	}

	w := performRequest(r, http.MethodPost, "/api/v1/petitions/ciclovia/signatures", gin.H{
		"full_name": "Maria Silva",
		"email":     "maria99@example.com",
	}, nil)
	mustHaveStatus(t, w, http.StatusTooManyRequests)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// the rejected request never reaches the database
	count, err := app.Repository.Signature.CountByPetition(context.Background(), nil, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSignPetitionListingIsNotRateLimited(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	created := createPetition(t, r, gin.H{
		"title":       "Ciclovia",
		"description": "Queremos uma ciclovia",
		"goal":        100,
		"slug":        "ciclovia",
	})

	for i := 0; i < 5; i++ {
		w := performRequest(r, http.MethodGet, "/api/v1/petitions/"+created.ID+"/signatures", nil, nil)
		mustHaveStatus(t, w, http.StatusOK)
	}
}
