package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathID binds the {id} path parameter. It writes a 422 and returns false
// when the value is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, "invalid trip id: "+err.Error())
		return id, false
	}
	return id, true
}

// queryParam binds an optional form-style query parameter into dst.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		requestError(w, "invalid query parameter "+name+": "+err.Error())
		return false
	}
	return true
}
