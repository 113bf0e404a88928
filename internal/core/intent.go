package core

// IntentKind identifies a playback control action.
type IntentKind int

const (
	IntentPrevious IntentKind = iota
	IntentNext
	IntentToggle
)

func (k IntentKind) String() string {
	switch k {
	case IntentPrevious:
		return "previous"
	case IntentNext:
		return "next"
	case IntentToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// PlaybackIntent is a single user control action. Toggle carries the playing
// state the user was looking at when they pressed the button; it decides
// whether the toggle resolves to pause or play.
type PlaybackIntent struct {
	Kind    IntentKind
	Playing bool
}

// Previous skips to the previous track.
func Previous() PlaybackIntent {
	return PlaybackIntent{Kind: IntentPrevious}
}

// Next skips to the next track.
func Next() PlaybackIntent {
	return PlaybackIntent{Kind: IntentNext}
}

// Toggle pauses when the last displayed state was playing, resumes otherwise.
func Toggle(playing bool) PlaybackIntent {
	return PlaybackIntent{Kind: IntentToggle, Playing: playing}
}
