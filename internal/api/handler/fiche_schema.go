package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// --- Request types ---

type listFichesQuery struct {
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
	Status  string `query:"status"`
	Product string `query:"product"`
	Search  string `query:"search"`
}

// nullableString records whether a JSON field was present at all, so that
// {"advisorId": null} (unassign) differs from {} (leave alone).
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type patchFicheRequest struct {
	Status    string         `json:"status"    validate:"omitempty,fiche_status"`
	AdvisorID nullableString `json:"advisorId"`
}

// --- Response types ---
// These are separate from domain types so the JSON contract is not coupled to
// internal changes.

type ficheResponse struct {
	ID         string   `json:"id"`
	ClientName string   `json:"clientName"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Product    string   `json:"product"`
	Status     string   `json:"status"`
	AdvisorID  *string  `json:"advisorId"`
	Type       string   `json:"type"`
	Garanties  []string `json:"garanties"`
	Prime      float64  `json:"prime"`
	CreatedAt  string   `json:"createdAt"`
}

type ficheListItemResponse struct {
	ficheResponse
	AdvisorName string `json:"advisorName"`
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type listFichesResponse struct {
	Data []ficheListItemResponse `json:"data"`
	Meta paginationResponse      `json:"meta"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func toFicheResponse(f domain.Fiche) ficheResponse {
	garanties := f.Garanties
	if garanties == nil {
		garanties = []string{}
	}
	return ficheResponse{
		ID:         f.ID,
		ClientName: f.ClientName,
		Phone:      f.Phone,
		Email:      f.Email,
		Product:    string(f.Product),
		Status:     string(f.Status),
		AdvisorID:  f.AdvisorID,
		Type:       f.Type,
		Garanties:  garanties,
		Prime:      f.Prime,
		CreatedAt:  f.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
