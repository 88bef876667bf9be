package domain_test

import (
	"encoding/json"
	"testing"

	"pasar-kerja/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJobSnapshot(t *testing.T) {
	t.Run("Plain Object", func(t *testing.T) {
		raw := json.RawMessage(`{"title":"Warehouse Helper","pay":"500/day","city":"Pune"}`)

		snap := domain.DecodeJobSnapshot(raw)

		assert.NotNil(t, snap)
		assert.Equal(t, "Warehouse Helper", snap.Title)
		assert.Equal(t, "Pune", snap.City)
	})

	t.Run("Double Encoded String", func(t *testing.T) {
		// Some rows hold the snapshot serialized twice: a JSON string
		// whose content is the JSON object.
		raw := json.RawMessage(`"{\"title\":\"Warehouse Helper\",\"pay\":\"500/day\"}"`)

		snap := domain.DecodeJobSnapshot(raw)

		assert.NotNil(t, snap)
		assert.Equal(t, "Warehouse Helper", snap.Title)
	})

	t.Run("Absent", func(t *testing.T) {
		assert.Nil(t, domain.DecodeJobSnapshot(nil))
		assert.Nil(t, domain.DecodeJobSnapshot(json.RawMessage(`null`)))
	})

	t.Run("Malformed", func(t *testing.T) {
		assert.Nil(t, domain.DecodeJobSnapshot(json.RawMessage(`not json`)))
		assert.Nil(t, domain.DecodeJobSnapshot(json.RawMessage(`"not json either"`)))
	})
}

func TestDecodeWorkerSnapshot(t *testing.T) {
	raw := json.RawMessage(`{"name":"Asha Patil","email":"worker@example.com","avatar":"https://example.com/a.png"}`)

	snap := domain.DecodeWorkerSnapshot(raw)

	assert.NotNil(t, snap)
	assert.Equal(t, "Asha Patil", snap.Name)
	assert.Equal(t, "worker@example.com", snap.Email)
}

func TestApplicationStatus(t *testing.T) {
	assert.True(t, domain.ApplicationPending.IsValid())
	assert.False(t, domain.ApplicationStatus("MAYBE").IsValid())

	assert.False(t, domain.ApplicationPending.IsTerminal())
	assert.True(t, domain.ApplicationAccepted.IsTerminal())
	assert.True(t, domain.ApplicationRejected.IsTerminal())
}
