package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandero-ai/client-simulator/internal/dialogue"
	"github.com/wandero-ai/client-simulator/internal/engine"
	"github.com/wandero-ai/client-simulator/pkg/logger"
)

func TestStatusEndpoints(t *testing.T) {
	registry := engine.NewRegistry()
	registry.Start("c1", "worried_parent", "family_adventures")
	registry.Update("c1", dialogue.PhaseUpdate{
		Turn:        3,
		ClientPhase: dialogue.ClientPhaseExploring,
		AgencyPhase: dialogue.AgencyPhaseGatheringInfo,
		Interest:    0.5,
	})

	srv := NewServer(":0", registry, logger.NewNop())
	ts := httptest.NewServer(srv.srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Running       int                         `json:"running"`
		Total         int                         `json:"total"`
		Conversations []engine.ConversationStatus `json:"conversations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Running)
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Conversations, 1)
	assert.Equal(t, "c1", body.Conversations[0].ConversationID)
	assert.Equal(t, 3, body.Conversations[0].Turn)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
