package transport_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	wikiflavor "github.com/xwikiorgci/application-wikiflavor"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform"
	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
	kithttp "github.com/xwikiorgci/application-wikiflavor/kit/transport/http"
	"github.com/xwikiorgci/application-wikiflavor/mock"
	"github.com/xwikiorgci/application-wikiflavor/transport"
)

func newTestHandler(t *testing.T) (*transport.WikiFlavorHandler, *mock.FlavorService, *mock.WikiCreationService) {
	t.Helper()

	flavorSvc := mock.NewFlavorService()
	creationSvc := mock.NewWikiCreationService()
	h := transport.NewWikiFlavorHandler(zaptest.NewLogger(t), flavorSvc, creationSvc)
	return h, flavorSvc, creationSvc
}

func TestGetFlavors(t *testing.T) {
	h, flavorSvc, _ := newTestHandler(t)

	flavorSvc.FindFlavorsFn = func(context.Context) ([]wikiflavor.Flavor, error) {
		return []wikiflavor.Flavor{
			{ID: platform.ID(1), Name: "Knowledge Base", ExtensionID: "org.xwiki.contrib:kb-flavor"},
		}, nil
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flavors", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]wikiflavor.Flavor
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body["flavors"], 1)
	assert.Equal(t, "org.xwiki.contrib:kb-flavor", body["flavors"][0].ExtensionID)
}

func TestCreateWiki(t *testing.T) {
	h, _, creationSvc := newTestHandler(t)

	creationSvc.CreateWikiFn = func(_ context.Context, req wikiflavor.CreationRequest) (*wikiflavor.Job, error) {
		return &wikiflavor.Job{ID: platform.ID(7), WikiID: req.WikiID, Status: wikiflavor.JobQueued}, nil
	}

	body := strings.NewReader(`{"wikiId": "sales", "owner": "sarah"}`)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wikis", body))

	require.Equal(t, http.StatusAccepted, w.Code)

	var job wikiflavor.Job
	require.NoError(t, json.NewDecoder(w.Body).Decode(&job))
	assert.Equal(t, "sales", job.WikiID)
	assert.Equal(t, wikiflavor.JobQueued, job.Status)
}

func TestCreateWiki_BadBody(t *testing.T) {
	h, _, creationSvc := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wikis", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.EInvalid, w.Header().Get(kithttp.PlatformErrorCodeHeader))
	assert.Equal(t, 0, creationSvc.CreateWikiCalls.Count())
}

func TestGetJob(t *testing.T) {
	h, _, creationSvc := newTestHandler(t)

	jobID := platform.ID(0x1234)
	creationSvc.FindJobByIDFn = func(_ context.Context, id platform.ID) (*wikiflavor.Job, error) {
		if id != jobID {
			return nil, &errors.Error{
				Code: errors.ENotFound,
				Msg:  fmt.Sprintf("creation job %s not found", id),
			}
		}
		return &wikiflavor.Job{ID: id, WikiID: "sales", Status: wikiflavor.JobSucceeded}, nil
	}

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wikis/jobs/"+jobID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)

		var job wikiflavor.Job
		require.NoError(t, json.NewDecoder(w.Body).Decode(&job))
		assert.Equal(t, wikiflavor.JobSucceeded, job.Status)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wikis/jobs/"+platform.ID(0xbeef).String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errors.ENotFound, w.Header().Get(kithttp.PlatformErrorCodeHeader))
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wikis/jobs/not-an-id", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		b, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.Contains(t, string(b), "invalid")
	})
}
