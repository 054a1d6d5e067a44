package mux

import "net/http"

// ServiceName identifies the service on the health check
const ServiceName = "videopoker-server"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type rootResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	payload := healthResponse{
		Status:  "OK",
		Version: m.version,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}

func (m *Mux) getRoot() http.HandlerFunc {
	payload := rootResponse{
		Status:  "ok",
		Service: ServiceName,
		Version: m.version,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}
