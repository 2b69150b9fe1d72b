package transport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	kithttp "github.com/xwikiorgci/application-wikiflavor/kit/transport/http"
)

const (
	prefixWikiFlavor = "/api/wikiflavor"
	errMissingParam  = "url missing %s"
	errInvalidParam  = "url %s is invalid"
)

// WikiFlavorHandler is the handler for the flavor registry and the wiki
// creation service. Permission checks live in the wrapped services, not here.
type WikiFlavorHandler struct {
	chi.Router

	api     *kithttp.API
	log     *zap.Logger
	flavors wikiflavor.FlavorService
	creator wikiflavor.WikiCreationService
}

func NewWikiFlavorHandler(log *zap.Logger, flavors wikiflavor.FlavorService, creator wikiflavor.WikiCreationService) *WikiFlavorHandler {
	h := &WikiFlavorHandler{
		log:     log,
		api:     kithttp.NewAPI(kithttp.WithLog(log)),
		flavors: flavors,
		creator: creator,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	)

	r.Route("/flavors", func(r chi.Router) {
		r.Get("/", h.handleGetFlavors)
	})

	r.Route("/wikis", func(r chi.Router) {
		r.Post("/", h.handleCreateWiki)
		r.Get("/jobs/{id}", h.handleGetJob)
	})

	h.Router = r

	return h
}

func (h *WikiFlavorHandler) Prefix() string {
	return prefixWikiFlavor
}

// get the list of available flavors
func (h *WikiFlavorHandler) handleGetFlavors(w http.ResponseWriter, r *http.Request) {
	flavors, err := h.flavors.FindFlavors(r.Context())
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	d := map[string][]wikiflavor.Flavor{
		"flavors": flavors,
	}
	h.api.Respond(w, r, http.StatusOK, d)
}

// submit a wiki creation request
func (h *WikiFlavorHandler) handleCreateWiki(w http.ResponseWriter, r *http.Request) {
	var req wikiflavor.CreationRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	job, err := h.creator.CreateWiki(r.Context(), req)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusAccepted, job)
}

// get the state of a creation job
func (h *WikiFlavorHandler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := getIDfromReq(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	job, err := h.creator.FindJobByID(r.Context(), *id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, job)
}

func getIDfromReq(r *http.Request, param string) (*platform.ID, error) {
	id := chi.URLParam(r, param)
	if id == "" {
		return nil, &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf(errMissingParam, param),
		}
	}

	i, err := platform.IDFromString(id)
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf(errInvalidParam, param),
		}
	}

	return i, nil
}
