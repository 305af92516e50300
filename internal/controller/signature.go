package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"github.com/mobiliza/peticoes/internal/repository"
	"github.com/mobiliza/peticoes/internal/util"
	"gorm.io/gorm"
)

type SignatureController struct {
	*baseController
}

const (
	ErrAlreadySigned   = "this email already signed the petition"
	ErrCpfRequired     = "cpf is required for this petition"
	ErrPhoneRequired   = "phone is required for this petition"
	protocolCodeLength = 10
)

// ip_address and user_agent are intentionally absent: they are stamped from
// the request and a client-supplied value of the same name is discarded.
type signatureCreateRequest struct {
	PetitionID    string  `json:"petition_id" binding:"omitempty,uuid4"`
	FullName      string  `json:"full_name" binding:"required,strNotEmpty,max=200"`
	Email         string  `json:"email" binding:"required,email"`
	Cpf           string  `json:"cpf" binding:"omitempty,max=14"`
	Phone         string  `json:"phone" binding:"omitempty,max=20"`
	City          string  `json:"city" binding:"omitempty,max=120"`
	State         string  `json:"state" binding:"omitempty,max=2"`
	UtmSource     string  `json:"utm_source"`
	UtmMedium     string  `json:"utm_medium"`
	UtmCampaign   string  `json:"utm_campaign"`
	TermsAccepted *bool   `json:"terms_accepted"`
	Verified      *bool   `json:"verified"`
}

func (sc SignatureController) ListSignatures(ctx *gin.Context) {
	sort := ctx.DefaultQuery("sort", "-created_date")

	signatures, err := sc.app.Repository.Signature.List(ctx, nil, sort)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid sort field", util.GenerateErrorMessages(err, "sort"), nil)
			return
		}

		sc.app.Logger.Errorf("Failed to list signatures: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list signatures", util.GenerateErrorMessages(errors.New("failed to list signatures")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"signatures": signatures})
}

// CreateSignature handles the flat form: the petition is referenced by
// petition_id in the body.
func (sc SignatureController) CreateSignature(ctx *gin.Context) {
	var body signatureCreateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sc.app.Logger.Debugf("Failed to bind signature request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if body.PetitionID == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New("petition_id is required"), "petition_id"), nil)
		return
	}

	petition, err := sc.app.Repository.Petition.GetById(ctx, nil, body.PetitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "petition_id"), nil)
			return
		}

		sc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create signature", util.GenerateErrorMessages(errors.New("failed to create signature")), nil)
		return
	}

	sc.createSignatureForPetition(ctx, petition, body)
}

// SignPetition handles the nested form: POST /petitions/:key/signatures.
func (sc SignatureController) SignPetition(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	var body signatureCreateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sc.app.Logger.Debugf("Failed to bind signature request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	petition, err := sc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		sc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create signature", util.GenerateErrorMessages(errors.New("failed to create signature")), nil)
		return
	}

	sc.createSignatureForPetition(ctx, petition, body)
}

func (sc SignatureController) createSignatureForPetition(ctx *gin.Context, petition *model.Petition, body signatureCreateRequest) {
	if petition.RequireCpf && body.Cpf == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrCpfRequired), "cpf"), nil)
		return
	}
	if petition.RequirePhone && body.Phone == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(errors.New(ErrPhoneRequired), "phone"), nil)
		return
	}

	protocol, err := gonanoid.New(protocolCodeLength)
	if err != nil {
		sc.app.Logger.Errorf("Failed to generate protocol code: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create signature", util.GenerateErrorMessages(errors.New("failed to create signature")), nil)
		return
	}

	now := time.Now()
	signature := model.Signature{
		PetitionID:  petition.ID,
		FullName:    body.FullName,
		Email:       body.Email,
		Cpf:         body.Cpf,
		Phone:       body.Phone,
		City:        body.City,
		State:       body.State,
		UtmSource:   body.UtmSource,
		UtmMedium:   body.UtmMedium,
		UtmCampaign: body.UtmCampaign,

		// Server-observed provenance, never client-supplied.
		IpAddress: util.ClientIP(ctx),
		UserAgent: ctx.GetHeader("User-Agent"),

		TermsAccepted: true,
		Verified:      true,
		Protocol:      constant.ProtocolPrefix + protocol,
	}
	if body.TermsAccepted != nil {
		signature.TermsAccepted = *body.TermsAccepted
	}
	if signature.TermsAccepted {
		signature.TermsAcceptedAt = &now
	}
	if body.Verified != nil {
		signature.Verified = *body.Verified
	}

	created, err := sc.app.Repository.Signature.Create(ctx, nil, &signature)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.ResponseFailed(ctx, http.StatusConflict, "Already signed", util.GenerateErrorMessages(errors.New(ErrAlreadySigned), "email"), nil)
			return
		}

		sc.app.Logger.Errorf("Failed to create signature: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create signature", util.GenerateErrorMessages(errors.New("failed to create signature")), nil)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{"signature": created})
}

// ListPetitionSignatures pages one petition's signatures for the dashboard.
func (sc SignatureController) ListPetitionSignatures(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Petition id or slug is required", util.GenerateErrorMessages(errors.New(ErrPetitionKeyRequired), "key"), nil)
		return
	}

	type Request struct {
		Since    *string `form:"since" binding:"omitempty,datetime=2006-01-02"`
		Until    *string `form:"until" binding:"omitempty,datetime=2006-01-02"`
		Page     uint    `form:"page,default=1" binding:"omitempty,gte=1"`
		PageSize uint    `form:"page_size,default=50" binding:"omitempty,gte=1"`
	}
	var query Request
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	petition, err := sc.app.Repository.Petition.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Petition not found", util.GenerateErrorMessages(errors.New(ErrPetitionNotFound), "key"), nil)
			return
		}

		sc.app.Logger.Errorf("Failed to get petition: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list signatures", util.GenerateErrorMessages(errors.New("failed to list signatures")), nil)
		return
	}

	var since, until *time.Time
	if query.Since != nil {
		if t, err := time.Parse(dateOnlyLayout, *query.Since); err == nil {
			since = &t
		}
	}
	if query.Until != nil {
		if t, err := time.Parse(dateOnlyLayout, *query.Until); err == nil {
			until = &t
		}
	}

	page, pageSize := util.NormalizePage(query.Page, query.PageSize)
	signatures, total, err := sc.app.Repository.Signature.ListByPetition(ctx, nil, petition.ID, since, until, page, pageSize)
	if err != nil {
		sc.app.Logger.Errorf("Failed to list signatures: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list signatures", util.GenerateErrorMessages(errors.New("failed to list signatures")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"items":      signatures,
		"page":       page,
		"page_size":  pageSize,
		"total":      total,
		"total_page": util.CalculateTotalPage(total, pageSize),
	})
}
