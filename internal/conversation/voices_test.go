package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultVoiceTableKnownSpeakers(t *testing.T) {
	table := DefaultVoiceTable()

	mentor := table.Resolve("DR_ARJUN")
	require.Equal(t, "onyx", mentor.Voice)
	require.Equal(t, 1.00, mentor.Speed)

	student := table.Resolve("RIYA")
	require.Equal(t, "nova", student.Voice)
	require.Equal(t, 1.05, student.Speed)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	table := DefaultVoiceTable()

	require.Equal(t, "nova", table.Resolve("riya").Voice)
	require.Equal(t, "nova", table.Resolve("Riya").Voice)
	require.Equal(t, "onyx", table.Resolve(" dr_arjun ").Voice)
}

func TestResolveUnknownSpeakerFallsBack(t *testing.T) {
	table := DefaultVoiceTable()

	profile := table.Resolve("NARRATOR")
	require.Equal(t, "onyx", profile.Voice)
	require.Equal(t, 1.0, profile.Speed)
}

func TestNewVoiceTableNormalizesKeys(t *testing.T) {
	table := NewVoiceTable(map[string]VoiceProfile{
		"alice": {Voice: "shimmer", Speed: 0.9},
	}, VoiceProfile{Voice: "echo", Speed: 1.0})

	require.Equal(t, "shimmer", table.Resolve("ALICE").Voice)
	require.Equal(t, "echo", table.Resolve("bob").Voice)
}
