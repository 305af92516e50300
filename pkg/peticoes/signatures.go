package peticoes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type SignatureService struct {
	client *Client
}

// SignResult reports where the signature ended up. Degraded means the remote
// call failed and the record only exists in the local store; RemoteErr holds
// the failure. Callers must surface degraded saves to the user.
type SignResult struct {
	Signature Signature
	Degraded  bool
	RemoteErr error
}

func (s *SignatureService) List(ctx context.Context, sort string) ([]Signature, error) {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}

	var out struct {
		Signatures []Signature `json:"signatures"`
	}
	if err := s.client.do(ctx, http.MethodGet, "/v1/signatures", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Signatures, nil
}

// ListByPetition pages one petition's signatures, optionally bounded by
// since/until dates in 2006-01-02 form.
func (s *SignatureService) ListByPetition(ctx context.Context, key string, params map[string]string) (*SignaturePage, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}

	var out SignaturePage
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/v1/petitions/%s/signatures", url.PathEscape(key)), query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Sign submits a signature for the petition identified by id or slug. When
// the remote call fails for any reason the signature is kept in the local
// store and the result comes back Degraded. An error is returned only when
// both the remote call and the local fallback fail.
func (s *SignatureService) Sign(ctx context.Context, key string, req SignatureRequest) (*SignResult, error) {
	var out struct {
		Signature Signature `json:"signature"`
	}
	remoteErr := s.client.do(ctx, http.MethodPost, fmt.Sprintf("/v1/petitions/%s/signatures", url.PathEscape(key)), nil, req, &out)
	if remoteErr == nil {
		return &SignResult{Signature: out.Signature}, nil
	}

	local := Signature{
		PetitionID:  key,
		FullName:    req.FullName,
		Email:       req.Email,
		Cpf:         req.Cpf,
		Phone:       req.Phone,
		City:        req.City,
		State:       req.State,
		UtmSource:   req.UtmSource,
		UtmMedium:   req.UtmMedium,
		UtmCampaign: req.UtmCampaign,
	}
	if req.TermsAccepted != nil {
		local.TermsAccepted = *req.TermsAccepted
	} else {
		local.TermsAccepted = true
	}

	saved, err := s.client.store.saveSignature(local)
	if err != nil {
		return nil, fmt.Errorf("remote call failed (%v) and local fallback failed: %w", remoteErr, err)
	}

	return &SignResult{Signature: *saved, Degraded: true, RemoteErr: remoteErr}, nil
}

// PendingLocal returns signatures that only exist in the local store, so the
// caller can retry them or show them as not yet delivered.
func (s *SignatureService) PendingLocal() ([]Signature, error) {
	return s.client.store.listSignatures()
}
