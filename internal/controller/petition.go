package controller

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"github.com/mobiliza/peticoes/internal/repository"
	"github.com/mobiliza/peticoes/internal/util"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type PetitionController struct {
	*baseController
}

const (
	ErrPetitionNotFound     = "petition not found"
	ErrPetitionKeyRequired  = "petition id or slug is required"
	ErrPublishedNeedsSlug   = "a published petition must have a slug"
	ErrNoUpdatableFields    = "request body has no updatable fields"
	ErrSlugAlreadyTaken     = "slug is already taken"
	dateOnlyLayout          = "2006-01-02"
	qrCodeSizePx            = 256
)

type petitionCreateRequest struct {
	Title        string  `json:"title" binding:"required,strNotEmpty,max=200"`
	Slug         string  `json:"slug" binding:"omitempty,max=120"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description" binding:"required,strNotEmpty"`
	ImageURL     string  `json:"image_url"`
	LogoURL      string  `json:"logo_url"`
	Goal         int     `json:"goal" binding:"required,gt=0"`
	Deadline     *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status" binding:"omitempty,oneof=draft published paused closed"`
	RequireCpf   *bool   `json:"require_cpf"`
	RequirePhone *bool   `json:"require_phone"`
	PrimaryColor string  `json:"primary_color" binding:"omitempty,hexcolor"`
	TermsText    string  `json:"terms_text"`
}

// All fields optional; present fields are still type and format checked.
type petitionUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,strNotEmpty,max=200"`
	Slug         *string `json:"slug" binding:"omitempty,max=120"`
	Summary      *string `json:"summary"`
	Description  *string `json:"description" binding:"omitempty,strNotEmpty"`
	ImageURL     *string `json:"image_url"`
	LogoURL      *string `json:"logo_url"`
	Goal         *int    `json:"goal" binding:"omitempty,gt=0"`
	Deadline     *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Status       *string `json:"status" binding:"omitempty,oneof=draft published paused closed"`
	RequireCpf   *bool   `json:"require_cpf"`
	RequirePhone *bool   `json:"require_phone"`
	PrimaryColor *string `json:"primary_color" binding:"omitempty,hexcolor"`
	TermsText    *string `json:"terms_text"`
}

func (r petitionUpdateRequest) toFieldMap() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Slug != nil {
		fields["slug"] = util.Slugify(*r.Slug)
	}
	if r.Summary != nil {
		fields["summary"] = *r.Summary
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.ImageURL != nil {
		fields["image_url"] = *r.ImageURL
	}
	if r.LogoURL != nil {
		fields["logo_url"] = *r.LogoURL
	}
	if r.Goal != nil {
		fields["goal"] = *r.Goal
	}
	if r.Deadline != nil {
		if deadline, err := time.Parse(dateOnlyLayout, *r.Deadline); err == nil {
			fields["deadline"] = deadline
		}
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.RequireCpf != nil {
		fields["require_cpf"] = *r.RequireCpf
	}
	if r.RequirePhone != nil {
		fields["require_phone"] = *r.RequirePhone
	}
	if r.PrimaryColor != nil {
		fields["primary_color"] = *r.PrimaryColor
	}
	if r.TermsText != nil {
		fields["terms_text"] = *r.TermsText
	}
	return fields
}

func (pc PetitionController) ListPetitions(ctx *gin.Context) {
	sort := ctx.DefaultQuery("sort", "-created_date")

	petitions, err := pc.app.Repository.Petition.List(ctx, nil, sort)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid sort field", util.GenerateErrorMessages(err, "sort"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to list petitions: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list petitions", util.GenerateErrorMessages(errors.New("failed to list petitions")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"petitions": petitions})
}

func (pc PetitionController) FilterPetitions(ctx *gin.Context) {
	filter := repository.PetitionFilter{
		Slug:   ctx.Query("slug"),
		Status: ctx.Query("status"),
	}
	if filter.Status != "" && !constant.PetitionStatus(filter.Status).Valid() {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid status", util.GenerateErrorMessages(errors.New("unknown petition status"), "status"), nil)
		return
	}

	petitions, err := pc.app.Repository.Petition.Filter(ctx, nil, filter)
	if err != nil {
		pc.app.Logger.Errorf("Failed to filter petitions: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to filter petitions", util.GenerateErrorMessages(errors.New("failed to filter petitions")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"petitions": petitions})
}

func (pc PetitionController) CreatePetition(ctx *gin.Context) {
	var body petitionCreateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		pc.app.Logger.Debugf("Failed to bind petition request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	status := constant.PetitionStatus(body.Status)
	if body.Status == "" {
		status = constant.PetitionStatusDraft
	}

	slug := util.Slugify(body.Slug)
	primaryColor := body.PrimaryColor
	if primaryColor == "" {
		primaryColor = constant.DefaultPrimaryColor
	}

	petition := model.Petition{
		Title:        body.Title,
		Slug:         slug,
		Summary:      body.Summary,
		Description:  body.Description,
		ImageURL:     body.ImageURL,
		LogoURL:      body.LogoURL,
		Goal:         body.Goal,
		Status:       status,
		PrimaryColor: primaryColor,
		TermsText:    body.TermsText,
	}
	if body.Deadline != nil {
		if deadline, err := time.Parse(dateOnlyLayout, *body.Deadline); err == nil {
			petition.Deadline = &deadline
		}
	}
	if body.RequireCpf != nil {
		petition.RequireCpf = *body.RequireCpf
	}
	if body.RequirePhone != nil {
		petition.RequirePhone = *body.RequirePhone
	}

	if !petition.PublishableWithSlug() {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrPublishedNeedsSlug), "slug"), nil)
		return
	}

	created, err := pc.app.Repository.Petition.Create(ctx, nil, &petition)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.ResponseFailed(ctx, http.StatusConflict, "Slug already taken", util.GenerateErrorMessages(errors.New(ErrSlugAlreadyTaken), "slug"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to create petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create petition", util.GenerateErrorMessages(errors.New("failed to create petition")), nil)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{"petition": created})
}

func (pc PetitionController) UpdatePetition(ctx *gin.Context) {
	petitionId := ctx.Params.ByName("key")
	if petitionId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "petitionId"), nil)
		return
	}

	var body petitionUpdateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		pc.app.Logger.Debugf("Failed to bind petition update request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	fields := body.toFieldMap()
	if len(fields) == 0 {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Empty update", util.GenerateErrorMessages(errors.New(ErrNoUpdatableFields)), nil)
		return
	}

	existing, err := pc.app.Repository.Petition.GetById(ctx, nil, petitionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "petitionId"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update petition", util.GenerateErrorMessages(errors.New("failed to update petition")), nil)
		return
	}

	// publish-needs-slug invariant against the prospective state
	nextStatus := existing.Status
	if body.Status != nil {
		nextStatus = constant.PetitionStatus(*body.Status)
	}
	nextSlug := existing.Slug
	if slug, ok := fields["slug"].(string); ok {
		nextSlug = slug
	}
	prospective := model.Petition{Slug: nextSlug, Status: nextStatus}
	if !prospective.PublishableWithSlug() {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrPublishedNeedsSlug), "slug"), nil)
		return
	}

	updated, err := pc.app.Repository.Petition.Update(ctx, nil, petitionId, fields)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "petitionId"), nil)
		case errors.Is(err, repository.ErrEmptyUpdate):
			util.ResponseFailed(ctx, http.StatusBadRequest, "Empty update", util.GenerateErrorMessages(err), nil)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			util.ResponseFailed(ctx, http.StatusConflict, "Slug already taken", util.GenerateErrorMessages(errors.New(ErrSlugAlreadyTaken), "slug"), nil)
		default:
			pc.app.Logger.Errorf("Failed to update petition: %v", err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update petition", util.GenerateErrorMessages(errors.New("failed to update petition")), nil)
		}
		return
	}

	util.ResponseSuccess(ctx, gin.H{"petition": updated})
}

func (pc PetitionController) GetPetition(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	petition, err := pc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get petition", util.GenerateErrorMessages(errors.New("failed to get petition")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"petition": petition})
}

func (pc PetitionController) GetPetitionStats(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	petition, err := pc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get petition stats", util.GenerateErrorMessages(errors.New("failed to get petition stats")), nil)
		return
	}

	stats, err := pc.app.Repository.Signature.Stats(ctx, nil, petition.ID)
	if err != nil {
		pc.app.Logger.Errorf("Failed to aggregate stats: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get petition stats", util.GenerateErrorMessages(errors.New("failed to get petition stats")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"stats": stats})
}

// ServePetitionQRCode renders a png qr code pointing at the public petition
// page, used on printed material and the share dialog.
func (pc PetitionController) ServePetitionQRCode(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	petition, err := pc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate qr code", util.GenerateErrorMessages(errors.New("failed to generate qr code")), nil)
		return
	}

	target := petition.Slug
	if target == "" {
		target = petition.ID
	}
	publicURL := fmt.Sprintf("%s/p/%s", pc.app.Config.PublicURL, target)

	png, err := qrcode.Encode(publicURL, qrcode.Medium, qrCodeSizePx)
	if err != nil {
		pc.app.Logger.Errorf("Failed to encode qr code: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate qr code", util.GenerateErrorMessages(errors.New("failed to generate qr code")), nil)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// ExportPetitionSignatures streams every signature of one petition as csv for
// the admin dashboard download.
func (pc PetitionController) ExportPetitionSignatures(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	petition, err := pc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		pc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export signatures", util.GenerateErrorMessages(errors.New("failed to export signatures")), nil)
		return
	}

	signatures, err := pc.app.Repository.Signature.ListAllByPetition(ctx, nil, petition.ID)
	if err != nil {
		pc.app.Logger.Errorf("Failed to list signatures: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export signatures", util.GenerateErrorMessages(errors.New("failed to export signatures")), nil)
		return
	}

	filename := fmt.Sprintf("signatures_%s.csv", petition.ID)
	if petition.Slug != "" {
		filename = fmt.Sprintf("signatures_%s.csv", petition.Slug)
	}

	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(ctx.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"full_name", "email", "cpf", "phone", "city", "state", "created_date", "utm_source", "utm_medium", "utm_campaign", "protocol"})
	for _, s := range signatures {
		createdAt := ""
		if s.CreatedAt != nil {
			createdAt = s.CreatedAt.UTC().Format(time.RFC3339)
		}
		_ = writer.Write([]string{s.FullName, s.Email, s.Cpf, s.Phone, s.City, s.State, createdAt, s.UtmSource, s.UtmMedium, s.UtmCampaign, s.Protocol})
	}
}
