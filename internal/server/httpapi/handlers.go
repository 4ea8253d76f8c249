package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/dmitrijs2005/landlease/internal/server/models"
	"github.com/dmitrijs2005/landlease/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type createAssetRequest struct {
	AssetID     uint64 `json:"asset_id"`
	Owner       string `json:"owner"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type createLeaseRequest struct {
	AssetID       uint64 `json:"asset_id"`
	Owner         string `json:"owner"`
	Lessee        string `json:"lessee"`
	StartTime     uint64 `json:"start_time"`
	EndTime       uint64 `json:"end_time"`
	PaymentAmount uint64 `json:"payment_amount"`
}

type createLeaseResponse struct {
	LeaseID uint64 `json:"lease_id"`
}

type transitionResponse struct {
	Lease   models.Lease `json:"lease"`
	Applied bool         `json:"applied"`
	Outcome string       `json:"outcome"`
}

func idParam(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", common.ErrInvalidArgument, chi.URLParam(r, "id"))
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	asset, err := s.registry.CreateAsset(r.Context(), services.CreateAssetInput{
		ID:          req.AssetID,
		Owner:       req.Owner,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.registry.ListAssets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) viewAsset(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asset, err := s.registry.ViewAsset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) createLease(w http.ResponseWriter, r *http.Request) {
	var req createLeaseRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.registry.CreateLease(r.Context(), services.CreateLeaseInput{
		AssetID:       req.AssetID,
		Owner:         req.Owner,
		Lessee:        req.Lessee,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createLeaseResponse{LeaseID: id})
}

func (s *Server) listLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := s.registry.ListLeases(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

func (s *Server) viewLease(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lease, err := s.registry.ViewLease(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (s *Server) completeLease(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.registry.CompleteLease)
}

func (s *Server) expireLease(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.registry.ExpireLease)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uint64) (services.Transition, error)) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tr, err := apply(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := transitionResponse{Lease: tr.Lease, Applied: tr.Applied, Outcome: "applied"}
	if !tr.Applied {
		resp.Outcome = "already_terminal"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) viewStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.registry.ViewAllLeaseStatus(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
