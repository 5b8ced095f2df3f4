package app

import (
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (app *application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "UP",
		Environment: app.config.env,
		Version:     version,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
