package core

// TrackState is a snapshot of the currently playing item. It is produced once
// per poll cycle and immutable after construction.
type TrackState struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artwork_url"`
	IsPlaying  bool   `json:"is_playing"`
}

// NotPlaying is the state reported when no playback is active (HTTP 204).
func NotPlaying() TrackState {
	return TrackState{Title: "Not Playing"}
}
