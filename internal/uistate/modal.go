package uistate

// ContactModal is the "contact us" dialog.
type ContactModal struct {
	Open bool `json:"open"`
}

func (m *ContactModal) Show() {
	m.Open = true
}

func (m *ContactModal) Close() {
	m.Open = false
}

// Click handles a pointer click inside the modal. Only clicks that land on the
// backdrop itself dismiss it.
func (m *ContactModal) Click(onBackdrop bool) {
	if onBackdrop {
		m.Close()
	}
}
