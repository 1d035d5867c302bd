package handlers

import (
	"net/http"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
