// Package menu composes the shell's native menus as a plain template tree.
// The tree is rebuilt from scratch whenever a click changes visible state;
// rendering it into the host toolkit lives in render.go.
package menu

const (
	TypeNormal    = "normal"
	TypeCheckbox  = "checkbox"
	TypeRadio     = "radio"
	TypeSeparator = "separator"
	TypeSubmenu   = "submenu"
	TypeRole      = "role"
)

// Role identifiers map to host-provided standard actions at render time.
const (
	RoleQuit             = "quit"
	RoleReload           = "reload"
	RoleToggleDevTools   = "toggledevtools"
	RoleZoomIn           = "zoomin"
	RoleZoomOut          = "zoomout"
	RoleResetZoom        = "resetzoom"
	RoleToggleFullscreen = "togglefullscreen"
	RoleAbout            = "about"
)

// Item is one node of the menu template tree.
type Item struct {
	Label       string
	Type        string
	Checked     bool
	Role        string
	Accelerator string
	OnClick     func()
	Items       []Item
}

func Normal(label string, onClick func()) Item {
	return Item{Type: TypeNormal, Label: label, OnClick: onClick}
}

func Checkbox(label string, checked bool, onClick func()) Item {
	return Item{Type: TypeCheckbox, Label: label, Checked: checked, OnClick: onClick}
}

func Radio(label string, checked bool, onClick func()) Item {
	return Item{Type: TypeRadio, Label: label, Checked: checked, OnClick: onClick}
}

func Separator() Item {
	return Item{Type: TypeSeparator}
}

func Submenu(label string, items ...Item) Item {
	return Item{Type: TypeSubmenu, Label: label, Items: items}
}

func Role(role, label, accelerator string) Item {
	return Item{Type: TypeRole, Role: role, Label: label, Accelerator: accelerator}
}
