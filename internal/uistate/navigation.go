package uistate

// Navigation tracks the mobile menu overlay and the desktop hover dropdown.
// Menu items are identified by href.
type Navigation struct {
	MobileOpen   bool   `json:"mobileOpen"`
	OpenSubmenu  string `json:"openSubmenu,omitempty"`
	OpenDropdown string `json:"openDropdown,omitempty"`
}

// ToggleMobile opens or closes the mobile menu. Either way no submenu stays expanded.
func (n *Navigation) ToggleMobile() {
	n.MobileOpen = !n.MobileOpen
	n.OpenSubmenu = ""
}

// ToggleSubmenu expands the children of href, or collapses them if already expanded.
func (n *Navigation) ToggleSubmenu(href string) {
	if n.OpenSubmenu == href {
		n.OpenSubmenu = ""
		return
	}
	n.OpenSubmenu = href
}

// SelectLink handles a tap in the mobile menu. A parent item toggles its
// submenu and keeps the menu open; a leaf closes everything.
func (n *Navigation) SelectLink(href string, hasChildren bool) {
	if hasChildren {
		n.ToggleSubmenu(href)
		return
	}
	n.CollapseMobile()
}

func (n *Navigation) CollapseMobile() {
	n.MobileOpen = false
	n.OpenSubmenu = ""
}

// HoverEnter opens the desktop dropdown of an entry. Leaf entries have none.
func (n *Navigation) HoverEnter(href string, hasChildren bool) {
	if hasChildren {
		n.OpenDropdown = href
	}
}

// HoverLeave closes whatever dropdown is open.
func (n *Navigation) HoverLeave() {
	n.OpenDropdown = ""
}
