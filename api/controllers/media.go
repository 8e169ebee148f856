package controllers

import (
	"net/http"

	"github.com/Viniciusgrn/forFunOrganizado/api/responses"
	"github.com/Viniciusgrn/forFunOrganizado/api/validators"
	mediasvc "github.com/Viniciusgrn/forFunOrganizado/internal/media"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
)

// SetMainMedia promotes one media item to its product's thumbnail.
func SetMainMedia(svc mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID, err := validators.ParsePathID(r, "mediaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetMain(r.Context(), mediaID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"media_id": mediaID, "is_main": true})
	}
}
