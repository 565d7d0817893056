package player

import "github.com/ayusman/mudra/internal/actuator"

// YouTubeName is the registry name of the YouTube web player.
const YouTubeName = "youtube"

// youtubeKeys are the web player's keyboard shortcuts.
var youtubeKeys = KeyMap{
	PlayPause:    actuator.KeySpace,
	VolumeUp:     actuator.KeyUp,
	VolumeDown:   actuator.KeyDown,
	SeekForward:  actuator.KeyRight,
	SeekBackward: actuator.KeyLeft,
}

// NewYouTube creates a player for the YouTube web player.
func NewYouTube(kb actuator.Keyboard, opts Options) Player {
	return NewKeyPlayer(YouTubeName, youtubeKeys, kb, opts)
}
