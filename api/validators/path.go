package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParsePathID reads a positive numeric path parameter.
func ParsePathID(r *http.Request, key string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").
			WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive id").
			WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}
