package handler

import (
	"net/http"

	"github.com/ayo6706/loan-origination/internal/api/problem"
	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/ayo6706/loan-origination/internal/service"
	"github.com/go-chi/chi/v5"
)

type MerchantConfigHandler struct {
	svc *service.MerchantConfigService
}

func NewMerchantConfigHandler(svc *service.MerchantConfigService) *MerchantConfigHandler {
	return &MerchantConfigHandler{svc: svc}
}

func (h *MerchantConfigHandler) GetMerchantConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := service.ParseRecordKey(chi.URLParam(r, "merchantId"))
	if !ok {
		problem.WriteField(w, "merchant_id", domain.MsgNoMerchantFound)
		return
	}

	m, found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "merchant-config/read-failed", "get merchant config failed")
		return
	}
	if !found {
		problem.WriteField(w, "merchant_id", domain.MsgNoMerchantFound)
		return
	}
	RespondJSON(w, http.StatusOK, m)
}

func (h *MerchantConfigHandler) CreateMerchantConfig(w http.ResponseWriter, r *http.Request) {
	var in service.MerchantConfigInput
	if err := decodeData(r, &in); err != nil {
		respondServiceError(w, r, err, "request/invalid-body", "decode merchant config failed")
		return
	}

	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "merchant-config/create-failed", "create merchant config failed")
		return
	}
	RespondJSON(w, http.StatusOK, m)
}

func (h *MerchantConfigHandler) UpdateMerchantConfig(w http.ResponseWriter, r *http.Request) {
	var in service.MerchantConfigInput
	if err := decodeData(r, &in); err != nil {
		respondServiceError(w, r, err, "request/invalid-body", "decode merchant config failed")
		return
	}

	m, err := h.svc.Update(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "merchant-config/update-failed", "update merchant config failed")
		return
	}
	RespondJSON(w, http.StatusOK, m)
}
