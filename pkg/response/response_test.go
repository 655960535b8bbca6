package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestFromError_StatusByKind(t *testing.T) {
	tests := []struct {
		kind   apperrors.Kind
		status int
	}{
		{apperrors.KindValidation, http.StatusBadRequest},
		{apperrors.KindAuthorization, http.StatusForbidden},
		{apperrors.KindNotFound, http.StatusNotFound},
		{apperrors.KindConflict, http.StatusConflict},
		{apperrors.KindPersistence, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			status, resp := render(t, apperrors.New(tt.kind, "X", "消息"))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, "X", resp.Error)
			assert.Equal(t, "消息", resp.Message)
		})
	}
}

func TestFromError_PersistenceDetails(t *testing.T) {
	status, resp := render(t, apperrors.Persistence(errors.New("connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "PERSISTENCE_ERROR", resp.Error)
	assert.Equal(t, "connection refused", resp.Details)
}

func TestFromError_Unclassified(t *testing.T) {
	status, resp := render(t, errors.New("raw"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodePersistence, resp.Code)
	assert.Equal(t, "raw", resp.Details)
}
