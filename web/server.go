package web

import (
	"encoding/json"
	stdio "io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/marziaf/birb-hunt/io"
)

// NewHandler serves the asset directory dir read-only. GET /meshes lists the
// mesh files it holds (what io.HTTPSource.ListMeshes reads); every other path
// is a plain file lookup. Requests are logged to logOut in Apache common log
// format.
func NewHandler(dir string, logOut stdio.Writer) http.Handler {
	src := io.DirSource{Root: dir}

	r := mux.NewRouter()
	r.HandleFunc("/"+io.MeshListPath, func(w http.ResponseWriter, req *http.Request) {
		meshes, err := src.ListMeshes(req.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(meshes)
	}).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(dir))).Methods(http.MethodGet, http.MethodHead)

	h := handlers.CORS(handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead}))(r)
	h = handlers.RecoveryHandler()(h)
	return handlers.LoggingHandler(logOut, h)
}
