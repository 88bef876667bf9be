//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL = "http://localhost:8080/api/v1"
)

func postJSON(t *testing.T, client *http.Client, path, token string, payload any) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, client *http.Client, path, token string) *http.Response {
	req, err := http.NewRequest("GET", baseURL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// TestApplyRespondFlow walks the full marketplace workflow: a poster
// publishes a job, a worker applies, the poster accepts from their
// notification feed, and the worker sees the decision.
//
// The API server must be running on localhost:8080 (docker-compose up)
// before running this test.
func TestApplyRespondFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}
	var posterToken, workerToken string
	var jobID string

	t.Run("Register Poster", func(t *testing.T) {
		resp := postJSON(t, client, "/auth/register", "", map[string]string{
			"email":     "poster@example.com",
			"password":  "password123",
			"full_name": "Budi Santoso",
			"role":      "poster",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decode(t, resp)
		posterToken = result["access_token"].(string)
	})

	t.Run("Register Worker", func(t *testing.T) {
		resp := postJSON(t, client, "/auth/register", "", map[string]string{
			"email":     "worker@example.com",
			"password":  "password123",
			"full_name": "Asha Patil",
			"role":      "worker",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decode(t, resp)
		workerToken = result["access_token"].(string)
	})

	t.Run("Poster Creates Job", func(t *testing.T) {
		resp := postJSON(t, client, "/jobs/", posterToken, map[string]interface{}{
			"title":         "Warehouse Helper",
			"description":   "Loading and unloading",
			"pay":           "500/day",
			"city":          "Pune",
			"people_needed": 2,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decode(t, resp)
		jobID = result["id"].(string)
	})

	t.Run("Worker Applies", func(t *testing.T) {
		resp := postJSON(t, client, fmt.Sprintf("/jobs/%s/apply", jobID), workerToken, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		result := decode(t, resp)
		assert.Equal(t, "PENDING", result["status"])
	})

	t.Run("Duplicate Apply Rejected", func(t *testing.T) {
		resp := postJSON(t, client, fmt.Sprintf("/jobs/%s/apply", jobID), workerToken, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	var notificationID string

	t.Run("Poster Sees Application Notification", func(t *testing.T) {
		resp := getJSON(t, client, "/notifications/", posterToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode(t, resp)
		data := result["data"].([]interface{})
		require.NotEmpty(t, data)

		first := data[0].(map[string]interface{})
		assert.Equal(t, "APPLICATION", first["type"])
		assert.Equal(t, "PENDING", first["status"])
		notificationID = first["id"].(string)
	})

	t.Run("Poster Accepts", func(t *testing.T) {
		resp := postJSON(t, client, fmt.Sprintf("/notifications/%s/respond", notificationID), posterToken, map[string]string{
			"decision": "ACCEPTED",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode(t, resp)
		assert.Equal(t, "ACCEPTED", result["status"])
	})

	t.Run("Second Decision Rejected", func(t *testing.T) {
		resp := postJSON(t, client, fmt.Sprintf("/notifications/%s/respond", notificationID), posterToken, map[string]string{
			"decision": "REJECTED",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Worker Sees Acceptance", func(t *testing.T) {
		resp := getJSON(t, client, "/notifications/", workerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode(t, resp)
		data := result["data"].([]interface{})
		require.NotEmpty(t, data)

		first := data[0].(map[string]interface{})
		assert.Equal(t, "RESPONSE", first["type"])
		assert.Equal(t, "ACCEPTED", first["status"])
	})

	t.Run("Poster Notification Shows Live Status", func(t *testing.T) {
		resp := getJSON(t, client, "/notifications/", posterToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode(t, resp)
		data := result["data"].([]interface{})

		// Newest first: the self-notification from accepting, then the
		// original application entry now reporting ACCEPTED.
		require.GreaterOrEqual(t, len(data), 2)
		for _, raw := range data {
			entry := raw.(map[string]interface{})
			assert.Equal(t, "ACCEPTED", entry["status"])
		}
	})

	t.Run("Nearby Jobs", func(t *testing.T) {
		resp := getJSON(t, client, "/jobs/nearby?location=Mumbai&radius_km=200", workerToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode(t, resp)
		jobs := result["jobs"].([]interface{})
		require.NotEmpty(t, jobs)

		first := jobs[0].(map[string]interface{})
		assert.Equal(t, "Warehouse Helper", first["title"])
		assert.NotNil(t, first["distance"])
	})
}
