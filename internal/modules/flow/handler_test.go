package flow

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	NewHandler(svc).RegisterRoutes(r.Group("/"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detailsReadySession(t *testing.T, svc *Service) string {
	t.Helper()
	sess := svc.Start(7)
	_, err := svc.SelectOffering(sess.ID, 7, "career")
	require.NoError(t, err)
	_, err = svc.SelectDate(sess.ID, 7, "2026-09-14")
	require.NoError(t, err)
	_, err = svc.SelectTime(sess.ID, 7, "02:00 PM")
	require.NoError(t, err)
	return sess.ID
}

func TestEnterDetails_PresenceOnlyValidation(t *testing.T) {
	svc := newTestService()
	r := newTestRouter(svc, 7)
	sessID := detailsReadySession(t, svc)

	// any non-empty email passes; only presence is checked
	w := postJSON(t, r, "/bookings/"+sessID+"/details", map[string]string{
		"name":  "Asha",
		"email": "asha at example dot com",
		"phone": "+911234567890",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sess, err := svc.Get(sessID, 7)
	require.NoError(t, err)
	assert.Equal(t, "asha at example dot com", sess.Selection.Details.Email)
}

func TestEnterDetails_MissingFieldsReportedPerField(t *testing.T) {
	svc := newTestService()
	r := newTestRouter(svc, 7)
	sessID := detailsReadySession(t, svc)

	w := postJSON(t, r, "/bookings/"+sessID+"/details", map[string]string{
		"name": "Asha",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "required", resp.Error.Details["Email"])
	assert.Equal(t, "required", resp.Error.Details["Phone"])
}
