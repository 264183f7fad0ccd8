package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CredentialHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
}

type credentialHandlerImpl struct {
	credentialService credential.Service
}

func NewCredentialHandler(credentialService credential.Service) CredentialHandler {
	return &credentialHandlerImpl{credentialService: credentialService}
}

// Issue implements CredentialHandler. Issuing revokes the employee's previous badge.
func (h *credentialHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.credentialService.IssueCredential(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Credential issued", result)
}
