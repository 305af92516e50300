package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mobiliza/peticoes/internal/model"
	"github.com/mobiliza/peticoes/internal/repository"
	"github.com/mobiliza/peticoes/internal/util"
	"gorm.io/gorm"
)

type LinkPageController struct {
	*baseController
}

const (
	ErrLinkPageNotFound    = "link page not found"
	ErrLinkPageKeyRequired = "link page id or slug is required"
)

type linkPageItemRequest struct {
	PetitionID  string `json:"petition_id" binding:"required,uuid4"`
	CustomLabel string `json:"custom_label" binding:"omitempty,max=120"`
}

type linkPageCreateRequest struct {
	Slug            string                `json:"slug" binding:"omitempty,max=120"`
	Title           string                `json:"title" binding:"required,strNotEmpty,max=120"`
	Bio             string                `json:"bio" binding:"omitempty,max=500"`
	AvatarURL       string                `json:"avatar_url"`
	BackgroundColor string                `json:"background_color" binding:"omitempty,hexcolor"`
	ButtonColor     string                `json:"button_color" binding:"omitempty,hexcolor"`
	TextColor       string                `json:"text_color" binding:"omitempty,hexcolor"`
	ShowCounters    *bool                 `json:"show_counters"`
	Items           []linkPageItemRequest `json:"items" binding:"omitempty,dive"`
}

type linkPageUpdateRequest struct {
	Slug            *string               `json:"slug" binding:"omitempty,max=120"`
	Title           *string               `json:"title" binding:"omitempty,strNotEmpty,max=120"`
	Bio             *string               `json:"bio" binding:"omitempty,max=500"`
	AvatarURL       *string               `json:"avatar_url"`
	BackgroundColor *string               `json:"background_color" binding:"omitempty,hexcolor"`
	ButtonColor     *string               `json:"button_color" binding:"omitempty,hexcolor"`
	TextColor       *string               `json:"text_color" binding:"omitempty,hexcolor"`
	ShowCounters    *bool                 `json:"show_counters"`
	Items           []linkPageItemRequest `json:"items" binding:"omitempty,dive"`
}

func (r linkPageUpdateRequest) toFieldMap() map[string]any {
	fields := map[string]any{}
	if r.Slug != nil {
		fields["slug"] = util.Slugify(*r.Slug)
	}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.AvatarURL != nil {
		fields["avatar_url"] = *r.AvatarURL
	}
	if r.BackgroundColor != nil {
		fields["background_color"] = *r.BackgroundColor
	}
	if r.ButtonColor != nil {
		fields["button_color"] = *r.ButtonColor
	}
	if r.TextColor != nil {
		fields["text_color"] = *r.TextColor
	}
	if r.ShowCounters != nil {
		fields["show_counters"] = *r.ShowCounters
	}
	return fields
}

func toLinkPageItems(items []linkPageItemRequest) []model.LinkPageItem {
	if items == nil {
		return nil
	}

	out := make([]model.LinkPageItem, 0, len(items))
	for i, item := range items {
		out = append(out, model.LinkPageItem{
			PetitionID:  item.PetitionID,
			CustomLabel: item.CustomLabel,
			Position:    i,
		})
	}
	return out
}

func (lc LinkPageController) ListLinkPages(ctx *gin.Context) {
	pages, err := lc.app.Repository.LinkPage.List(ctx, nil)
	if err != nil {
		lc.app.Logger.Errorf("Failed to list link pages: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list link pages", util.GenerateErrorMessages(errors.New("failed to list link pages")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"link_pages": pages})
}

func (lc LinkPageController) GetLinkPage(ctx *gin.Context) {
	key := ctx.Params.ByName("key")
	if key == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Link page id or slug is required", util.GenerateErrorMessages(errors.New(ErrLinkPageKeyRequired), "key"), nil)
		return
	}

	page, err := lc.app.Repository.LinkPage.GetByIdOrSlug(ctx, nil, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Link page not found", util.GenerateErrorMessages(errors.New(ErrLinkPageNotFound), "key"), nil)
			return
		}

		lc.app.Logger.Errorf("Failed to get link page: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get link page", util.GenerateErrorMessages(errors.New("failed to get link page")), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"link_page": page})
}

func (lc LinkPageController) CreateLinkPage(ctx *gin.Context) {
	var body linkPageCreateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		lc.app.Logger.Debugf("Failed to bind link page request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	page := model.LinkPage{
		Slug:      util.Slugify(body.Slug),
		Title:     body.Title,
		Bio:       body.Bio,
		AvatarURL: body.AvatarURL,
		Items:     toLinkPageItems(body.Items),
	}
	if body.BackgroundColor != "" {
		page.BackgroundColor = body.BackgroundColor
	}
	if body.ButtonColor != "" {
		page.ButtonColor = body.ButtonColor
	}
	if body.TextColor != "" {
		page.TextColor = body.TextColor
	}
	page.ShowCounters = true
	if body.ShowCounters != nil {
		page.ShowCounters = *body.ShowCounters
	}

	created, err := lc.app.Repository.LinkPage.Create(ctx, nil, &page)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.ResponseFailed(ctx, http.StatusConflict, "Slug already taken", util.GenerateErrorMessages(errors.New(ErrSlugAlreadyTaken), "slug"), nil)
			return
		}

		lc.app.Logger.Errorf("Failed to create link page: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create link page", util.GenerateErrorMessages(errors.New("failed to create link page")), nil)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{"link_page": created})
}

func (lc LinkPageController) UpdateLinkPage(ctx *gin.Context) {
	linkPageId := ctx.Params.ByName("key")
	if linkPageId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Link page id is required", util.GenerateErrorMessages(errors.New(ErrLinkPageKeyRequired), "linkPageId"), nil)
		return
	}

	var body linkPageUpdateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		lc.app.Logger.Debugf("Failed to bind link page update request: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	fields := body.toFieldMap()
	items := toLinkPageItems(body.Items)
	if len(fields) == 0 && items == nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Empty update", util.GenerateErrorMessages(errors.New(ErrNoUpdatableFields)), nil)
		return
	}

	updated, err := lc.app.Repository.LinkPage.Update(ctx, nil, linkPageId, fields, items)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Link page not found", util.GenerateErrorMessages(errors.New(ErrLinkPageNotFound), "linkPageId"), nil)
		case errors.Is(err, repository.ErrEmptyUpdate):
			util.ResponseFailed(ctx, http.StatusBadRequest, "Empty update", util.GenerateErrorMessages(err), nil)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			util.ResponseFailed(ctx, http.StatusConflict, "Slug already taken", util.GenerateErrorMessages(errors.New(ErrSlugAlreadyTaken), "slug"), nil)
		default:
			lc.app.Logger.Errorf("Failed to update link page: %v", err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update link page", util.GenerateErrorMessages(errors.New("failed to update link page")), nil)
		}
		return
	}

	util.ResponseSuccess(ctx, gin.H{"link_page": updated})
}
