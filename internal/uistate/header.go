package uistate

// ScrollThreshold is the vertical offset in pixels past which the header switches style.
const ScrollThreshold = 20

type Header struct {
	Scrolled bool `json:"scrolled"`
}

func (h *Header) OnScroll(y float64) {
	h.Scrolled = y > ScrollThreshold
}
