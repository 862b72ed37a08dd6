package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

func TestRecorder_Counters(t *testing.T) {
	r := newRecorder(prometheus.NewRegistry())

	r.ChunksIngested(3)
	r.ChunksIngested(2)
	r.EmbeddingCall("ok")
	r.EmbeddingCall("ok")
	r.EmbeddingCall("error")
	r.IdentifiersDropped(driven.DropReasonMalformed, 1)
	r.IdentifiersDropped(driven.DropReasonOutOfRange, 2)
	r.IdentifiersDropped(driven.DropReasonOutOfRange, 0)
	r.FingerprintMismatch()

	assert.Equal(t, 5.0, testutil.ToFloat64(r.chunksIngested))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.embeddingCalls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.embeddingCalls.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.droppedIdentifiers.WithLabelValues("malformed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.droppedIdentifiers.WithLabelValues("out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fingerprintMismatch))
}

func TestRecorder_ChatRequest(t *testing.T) {
	r := newRecorder(prometheus.NewRegistry())

	r.ChatRequest(http.StatusOK, 200*time.Millisecond)
	r.ChatRequest(http.StatusInternalServerError, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.chatRequests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chatRequests.WithLabelValues("500")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.chatDuration))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.FingerprintMismatch()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "resumechat_index_fingerprint_mismatch_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
