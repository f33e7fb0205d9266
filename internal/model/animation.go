package model

// FrameTag names a range of frames for game engine export.
type FrameTag struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Loop  *bool  `json:"loop,omitempty"`
	FPS   *int   `json:"fps,omitempty"`
	Dir   string `json:"direction,omitempty"`
}

// Animation sequences sprite or variant names into frames.
type Animation struct {
	Name     string              `json:"name"`
	Frames   []string            `json:"frames"`
	Duration *int                `json:"duration,omitempty"`
	Loop     *bool               `json:"loop,omitempty"`
	Tags     map[string]FrameTag `json:"tags,omitempty"`
}

const defaultFrameDuration = 100

// DurationMS returns the per-frame duration in milliseconds.
func (a Animation) DurationMS() int {
	if a.Duration != nil {
		return *a.Duration
	}
	return defaultFrameDuration
}

// Loops reports whether the animation repeats; the default is true.
func (a Animation) Loops() bool {
	if a.Loop != nil {
		return *a.Loop
	}
	return true
}

func (Animation) Kind() Kind { return KindAnimation }

func (a Animation) ItemName() string { return a.Name }

func (a Animation) WithName(name string) Animation {
	a.Name = name
	return a
}
