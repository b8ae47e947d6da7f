package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		solde float64
		want  string
	}{
		{"negative", -250, ObsInsufficient},
		{"zero", 0, ObsInsufficient},
		{"just below low limit", 999.99, ObsInsufficient},
		{"low limit", 1000, ObsAverage},
		{"middle", 3200.5, ObsAverage},
		{"high limit", 5000, ObsAverage},
		{"just above high limit", 5000.01, ObsHigh},
		{"large", 1e9, ObsHigh},
		{"positive infinity", math.Inf(1), ObsHigh},
		{"negative infinity", math.Inf(-1), ObsInsufficient},
		{"NaN", math.NaN(), ObsHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.solde))
		})
	}
}

func TestObservedClientJSON(t *testing.T) {
	out, err := json.Marshal(Observe(Client{NumCompte: 7, Nom: "A", Solde: 300}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"numCompte":7,"nom":"A","solde":300,"obs":"insuffisant"}`, string(out))
}
