package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		SlotID int64 `json:"slotId"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int64
	}{
		{name: "valid object", body: `{"slotId": 42}`, want: 42},
		{name: "unknown field", body: `{"slotId": 42, "extra": true}`, wantErr: true},
		{name: "malformed", body: `{"slotId":`, wantErr: true},
		{name: "trailing object", body: `{"slotId": 1}{"slotId": 2}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.SlotID)
		})
	}
}

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name       string
		respond    func(w http.ResponseWriter)
		wantStatus int
		wantError  string
	}{
		{name: "bad request", respond: func(w http.ResponseWriter) { RespondBadRequest(w, "bad") }, wantStatus: http.StatusBadRequest, wantError: "bad"},
		{name: "not found", respond: func(w http.ResponseWriter) { RespondNotFound(w, "missing") }, wantStatus: http.StatusNotFound, wantError: "missing"},
		{name: "conflict", respond: func(w http.ResponseWriter) { RespondConflict(w, "taken") }, wantStatus: http.StatusConflict, wantError: "taken"},
		{name: "internal", respond: RespondInternalError, wantStatus: http.StatusInternalServerError, wantError: msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
