package peticoes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type LinkPageService struct {
	client *Client
}

// LinkPageResult mirrors SignResult for link page writes: Degraded means the
// page is only saved locally (single-record convenience store), with the
// remote failure attached.
type LinkPageResult struct {
	LinkPage  LinkPage
	Degraded  bool
	RemoteErr error
}

func (s *LinkPageService) List(ctx context.Context) ([]LinkPage, error) {
	var out struct {
		LinkPages []LinkPage `json:"link_pages"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/link-pages", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.LinkPages, nil
}

func (s *LinkPageService) Get(ctx context.Context, key string) (*LinkPage, error) {
	var out struct {
		LinkPage LinkPage `json:"link_page"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/link-pages/"+url.PathEscape(key), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out.LinkPage, nil
}

func (s *LinkPageService) Create(ctx context.Context, req LinkPageRequest) (*LinkPageResult, error) {
	var out struct {
		LinkPage LinkPage `json:"link_page"`
	}
	remoteErr := s.client.do(ctx, http.MethodPost, "/v1/link-pages", nil, req, &out)
	if remoteErr == nil {
		return &LinkPageResult{LinkPage: out.LinkPage}, nil
	}

	saved, err := s.client.store.saveLinkPage(linkPageFromRequest(req))
	if err != nil {
		return nil, fmt.Errorf("remote call failed (%v) and local fallback failed: %w", remoteErr, err)
	}

	return &LinkPageResult{LinkPage: *saved, Degraded: true, RemoteErr: remoteErr}, nil
}

func (s *LinkPageService) Update(ctx context.Context, id string, req LinkPageRequest) (*LinkPageResult, error) {
	var out struct {
		LinkPage LinkPage `json:"link_page"`
	}
	remoteErr := s.client.do(ctx, http.MethodPatch, "/v1/link-pages/"+url.PathEscape(id), nil, req, &out)
	if remoteErr == nil {
		return &LinkPageResult{LinkPage: out.LinkPage}, nil
	}

	page := linkPageFromRequest(req)
	page.ID = id
	saved, err := s.client.store.saveLinkPage(page)
	if err != nil {
		return nil, fmt.Errorf("remote call failed (%v) and local fallback failed: %w", remoteErr, err)
	}

	return &LinkPageResult{LinkPage: *saved, Degraded: true, RemoteErr: remoteErr}, nil
}

func linkPageFromRequest(req LinkPageRequest) LinkPage {
	page := LinkPage{Title: req.Title, ShowCounters: true}
	if req.Slug != nil {
		page.Slug = *req.Slug
	}
	if req.Bio != nil {
		page.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		page.AvatarURL = *req.AvatarURL
	}
	if req.BackgroundColor != nil {
		page.BackgroundColor = *req.BackgroundColor
	}
	if req.ButtonColor != nil {
		page.ButtonColor = *req.ButtonColor
	}
	if req.TextColor != nil {
		page.TextColor = *req.TextColor
	}
	if req.ShowCounters != nil {
		page.ShowCounters = *req.ShowCounters
	}
	for i, item := range req.Items {
		page.Items = append(page.Items, LinkPageItem{
			PetitionID:  item.PetitionID,
			CustomLabel: item.CustomLabel,
			Position:    i,
		})
	}
	return page
}
