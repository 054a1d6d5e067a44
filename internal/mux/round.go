package mux

import (
	"net/http"

	"github.com/gorilla/mux"
)

type startPayload struct {
	UserID string `json:"user_id"`
	Ante   int64  `json:"ante"`
}

type discardPayload struct {
	UserID         string `json:"user_id"`
	RoundID        string `json:"round_id"`
	DiscardIndices []int  `json:"discard_indices"`
}

type revealPayload struct {
	UserID  string `json:"user_id"`
	RoundID string `json:"round_id"`
}

func (m *Mux) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["user_id"]
		if !authorized(w, r, userID) {
			return
		}

		status, err := m.machine.Status(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func (m *Mux) postStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sp startPayload
		if !decodeRequest(w, r, &sp) || !authorized(w, r, sp.UserID) {
			return
		}

		started, err := m.machine.Start(r.Context(), sp.UserID, sp.Ante)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, started)
	}
}

func (m *Mux) postDiscard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dp discardPayload
		if !decodeRequest(w, r, &dp) || !authorized(w, r, dp.UserID) {
			return
		}

		discarded, err := m.machine.Discard(r.Context(), dp.UserID, dp.RoundID, dp.DiscardIndices)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, discarded)
	}
}

func (m *Mux) postReveal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rp revealPayload
		if !decodeRequest(w, r, &rp) || !authorized(w, r, rp.UserID) {
			return
		}

		revealed, err := m.machine.Reveal(r.Context(), rp.UserID, rp.RoundID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, revealed)
	}
}

func (m *Mux) getPayTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.machine.PayTable())
	}
}
