package conversation

import "strings"

// VoiceTable maps speaker identifiers to voice profiles, with a
// fallback profile for unrecognized speakers.
type VoiceTable struct {
	profiles map[string]VoiceProfile
	fallback VoiceProfile
}

// NewVoiceTable builds a table from the given profiles. Keys are
// normalized to upper case.
func NewVoiceTable(profiles map[string]VoiceProfile, fallback VoiceProfile) *VoiceTable {
	normalized := make(map[string]VoiceProfile, len(profiles))
	for speaker, profile := range profiles {
		normalized[normalizeSpeaker(speaker)] = profile
	}
	return &VoiceTable{profiles: normalized, fallback: fallback}
}

// DefaultVoiceTable returns the built-in mentor/student casting:
// DR_ARJUN speaks with the deeper mentor voice, RIYA with the lighter,
// slightly faster student voice. Everyone else falls back to the
// mentor profile.
func DefaultVoiceTable() *VoiceTable {
	return NewVoiceTable(map[string]VoiceProfile{
		"DR_ARJUN": {Voice: "onyx", Speed: 1.00},
		"RIYA":     {Voice: "nova", Speed: 1.05},
	}, VoiceProfile{Voice: "onyx", Speed: 1.0})
}

// Resolve looks up the profile for a speaker, case-insensitively. It
// never fails: unknown speakers get the fallback profile.
func (t *VoiceTable) Resolve(speaker string) VoiceProfile {
	if profile, ok := t.profiles[normalizeSpeaker(speaker)]; ok {
		return profile
	}
	return t.fallback
}

func normalizeSpeaker(speaker string) string {
	return strings.ToUpper(strings.TrimSpace(speaker))
}
