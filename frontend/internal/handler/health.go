package handler

import (
	"net/http"

	"github.com/mergington/activities/shared/utils"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
