package handler

import "cadastro/internal/validation/models"

// BatchResponse is returned by POST /cnpj/validate/batch.
type BatchResponse struct {
	Results []models.Result `json:"results"`
	Valid   int             `json:"valid"`
	Invalid int             `json:"invalid"`
}

// ReservedResponse is returned by GET /cnpj/reserved.
type ReservedResponse struct {
	Reserved []string `json:"reserved"`
}

func newBatchResponse(results []models.Result) BatchResponse {
	resp := BatchResponse{Results: results}
	for _, r := range results {
		if r.Valid {
			resp.Valid++
		} else {
			resp.Invalid++
		}
	}
	return resp
}
