package handler

import (
	"net/http"

	"github.com/ayo6706/loan-origination/internal/api/problem"
	"github.com/ayo6706/loan-origination/internal/domain"
	"github.com/ayo6706/loan-origination/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LoanApplicationHandler struct {
	svc *service.LoanApplicationService
}

func NewLoanApplicationHandler(svc *service.LoanApplicationService) *LoanApplicationHandler {
	return &LoanApplicationHandler{svc: svc}
}

func (h *LoanApplicationHandler) CreateLoanApplication(w http.ResponseWriter, r *http.Request) {
	var in service.LoanApplicationInput
	if err := decodeData(r, &in); err != nil {
		respondServiceError(w, r, err, "request/invalid-body", "decode loan application failed")
		return
	}

	next, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "loan-application/create-failed", "create loan application failed")
		return
	}
	RespondJSON(w, http.StatusOK, next)
}

func (h *LoanApplicationHandler) GetLoanApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := service.ParseRecordKey(chi.URLParam(r, "id"))
	if !ok {
		problem.WriteField(w, "loan_application_id", domain.MsgCouldNotFindApplication)
		return
	}

	app, found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "loan-application/read-failed", "get loan application failed")
		return
	}
	if !found {
		problem.WriteField(w, "loan_application_id", domain.MsgCouldNotFindApplication)
		return
	}
	RespondJSON(w, http.StatusOK, app)
}

// SubmitExit lets a borrower leave the flow at any step.
func (h *LoanApplicationHandler) SubmitExit(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("loan application exited", zap.String("loan_application_id", chi.URLParam(r, "id")))
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Goodbye."})
}
