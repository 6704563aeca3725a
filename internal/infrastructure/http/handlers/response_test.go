package handlers

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, writeJSON(rec, http.StatusCreated, map[string]int{"n": 1}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.NaN()} {
		rec := httptest.NewRecorder()
		err := writeJSON(rec, http.StatusOK, map[string]float64{"area_km2": v})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
		assert.Equal(t, ErrCodeInternal, body["code"])
		assert.Equal(t, "internal error", body["error"])
	}
}

func TestWriteDomainErr_InvalidGeometryHidesParserDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("%w: ring 0 has 3 points", domerrors.ErrInvalidGeometry)
	writeDomainErr(rec, zerolog.Nop(), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidGeometry, body["code"])
	assert.Equal(t, domerrors.ErrInvalidGeometry.Error(), body["error"])
	assert.NotContains(t, rec.Body.String(), "ring 0")
}
