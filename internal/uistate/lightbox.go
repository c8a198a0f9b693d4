package uistate

import "fmt"

// Lightbox cycles through a gallery of Size images.
type Lightbox struct {
	Open  bool `json:"open"`
	Index int  `json:"index"`
	Size  int  `json:"size"`
}

func NewLightbox(size int) Lightbox {
	if size < 0 {
		size = 0
	}
	return Lightbox{Size: size}
}

// Show opens the lightbox at image i.
func (l *Lightbox) Show(i int) error {
	if i < 0 || i >= l.Size {
		return fmt.Errorf("lightbox: index %d out of range [0, %d)", i, l.Size)
	}
	l.Open = true
	l.Index = i
	return nil
}

// Next and Prev wrap around in both directions and do nothing while closed.
func (l *Lightbox) Next() {
	if !l.Open || l.Size == 0 {
		return
	}
	l.Index = (l.Index + 1) % l.Size
}

func (l *Lightbox) Prev() {
	if !l.Open || l.Size == 0 {
		return
	}
	l.Index = (l.Index + l.Size - 1) % l.Size
}

func (l *Lightbox) Close() {
	l.Open = false
	l.Index = 0
}

// Click dismisses the lightbox only when the backdrop was hit, never the image or its controls.
func (l *Lightbox) Click(onBackdrop bool) {
	if onBackdrop {
		l.Close()
	}
}

// Resize changes the gallery size, closing the lightbox if the current image no longer exists.
func (l *Lightbox) Resize(size int) {
	if size < 0 {
		size = 0
	}
	l.Size = size
	if l.Index >= size {
		l.Close()
	}
}
