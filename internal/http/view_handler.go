package http

import (
	"encoding/json"
	"net/http"
	"time"
)

type ViewHandler struct {
	// settle bounds how long a navigation waits for the page it opened
	settle time.Duration
}

func NewViewHandler(settle time.Duration) *ViewHandler {
	return &ViewHandler{settle: settle}
}

type NavigateRequestDTO struct {
	Location string `json:"location"`
}

func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, sess.View())
}

// Navigate moves the session and answers with the new view once its page
// has loaded, or as it stands when loading outlasts the settle time.
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var req NavigateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess.Navigate(req.Location)

	settled := make(chan struct{})
	go func() {
		sess.Settle()
		close(settled)
	}()
	timer := time.NewTimer(h.settle)
	defer timer.Stop()
	select {
	case <-settled:
	case <-timer.C:
	case <-r.Context().Done():
	}

	respondJSON(w, http.StatusOK, sess.View())
}
