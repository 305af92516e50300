package peticoes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type PetitionService struct {
	client *Client
}

// List returns all petitions ordered by the "-field"/"field" sort token.
func (s *PetitionService) List(ctx context.Context, sort string) ([]Petition, error) {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}

	var out struct {
		Petitions []Petition `json:"petitions"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/petitions", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Petitions, nil
}

// Filter returns petitions matching all given criteria exactly. Recognized
// keys: slug, status.
func (s *PetitionService) Filter(ctx context.Context, criteria map[string]string) ([]Petition, error) {
	query := url.Values{}
	for key, value := range criteria {
		query.Set(key, value)
	}

	var out struct {
		Petitions []Petition `json:"petitions"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/petitions/filter", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Petitions, nil
}

// Get resolves a petition by id or slug, whichever the key is.
func (s *PetitionService) Get(ctx context.Context, key string) (*Petition, error) {
	var out struct {
		Petition Petition `json:"petition"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/petitions/"+url.PathEscape(key), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out.Petition, nil
}

func (s *PetitionService) Create(ctx context.Context, req PetitionRequest) (*Petition, error) {
	var out struct {
		Petition Petition `json:"petition"`
	}
	if err := s.client.do(ctx, http.MethodPost, "/v1/petitions", nil, req, &out); err != nil {
		return nil, err
	}

	return &out.Petition, nil
}

func (s *PetitionService) Update(ctx context.Context, id string, req PetitionRequest) (*Petition, error) {
	var out struct {
		Petition Petition `json:"petition"`
	}
	if err := s.client.do(ctx, http.MethodPatch, "/v1/petitions/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}

	return &out.Petition, nil
}

func (s *PetitionService) Stats(ctx context.Context, key string) (*PetitionStats, error) {
	var out struct {
		Stats PetitionStats `json:"stats"`
	}
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/v1/petitions/%s/stats", url.PathEscape(key)), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out.Stats, nil
}

// QRCodeURL is the address of the share qr code png for one petition.
func (s *PetitionService) QRCodeURL(key string) string {
	return fmt.Sprintf("%s/v1/petitions/%s/qrcode", s.client.baseURL, url.PathEscape(key))
}
