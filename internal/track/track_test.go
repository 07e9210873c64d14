package track

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cxd309/lapsim/internal/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Section
	}{
		{"explicit straight", `{"name":"main","length":120,"type":"straight"}`, Straight("main", 120)},
		{"explicit turn with radius", `{"name":"hairpin","length":30,"type":"turn","radius":12}`, Turn("hairpin", 30, 12)},
		{"inferred straight", `{"name":"straight","length":100}`, Straight("straight", 100)},
		{"inferred prefixed straight", `{"name":"Straight 2","length":80}`, Straight("Straight 2", 80)},
		{"inferred turn", `{"name":"turn 1","length":50}`, Turn("turn 1", 50, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Section
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestSection_UnmarshalJSON_UnknownType(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"name":"x","length":1,"type":"chicane"}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section type "chicane"`)
}

func TestTrack_Validate(t *testing.T) {
	valid := Track{
		Sections:      []Section{Straight("straight", 100), Turn("turn 1", 50, 20)},
		ReferenceTurn: "turn 1",
	}
	require.NoError(t, valid.Validate())
	assert.InDelta(t, 150, valid.Length(), 1e-12)

	configCases := []struct {
		name  string
		trk   Track
		field string
	}{
		{"no sections", Track{ReferenceTurn: "turn 1"}, "track.sections"},
		{"no reference", Track{Sections: valid.Sections}, "track.reference_turn"},
		{"zero length", Track{Sections: []Section{Straight("straight", 0), Turn("turn 1", 5, 1)}, ReferenceTurn: "turn 1"}, "track.sections[0].length"},
		{"duplicate name", Track{Sections: []Section{Straight("a", 1), Straight("a", 2), Turn("turn 1", 5, 1)}, ReferenceTurn: "turn 1"}, "track.sections[1].name"},
		{"negative radius", Track{Sections: []Section{Straight("a", 1), Turn("turn 1", 5, -1)}, ReferenceTurn: "turn 1"}, "track.sections[1].radius"},
	}
	for _, tc := range configCases {
		t.Run(tc.name, func(t *testing.T) {
			var cfgErr *simerr.ConfigurationError
			require.True(t, errors.As(tc.trk.Validate(), &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}

	degenerateCases := []struct {
		name string
		trk  Track
	}{
		{"reference missing", Track{Sections: valid.Sections, ReferenceTurn: "turn 9"}},
		{"reference is straight", Track{Sections: valid.Sections, ReferenceTurn: "straight"}},
		{"no straights", Track{Sections: []Section{Turn("turn 1", 50, 20), Turn("turn 2", 30, 10)}, ReferenceTurn: "turn 1"}},
	}
	for _, tc := range degenerateCases {
		t.Run(tc.name, func(t *testing.T) {
			var dt *simerr.DegenerateTrackError
			assert.True(t, errors.As(tc.trk.Validate(), &dt))
		})
	}
}
