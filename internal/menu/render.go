package menu

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

// RoleActions binds role identifiers to host-provided standard actions.
type RoleActions struct {
	Quit             func()
	Reload           func()
	ToggleDevTools   func()
	ZoomIn           func()
	ZoomOut          func()
	ResetZoom        func()
	ToggleFullscreen func()
	About            func()
}

func (r RoleActions) action(role string) func() {
	switch role {
	case RoleQuit:
		return r.Quit
	case RoleReload:
		return r.Reload
	case RoleToggleDevTools:
		return r.ToggleDevTools
	case RoleZoomIn:
		return r.ZoomIn
	case RoleZoomOut:
		return r.ZoomOut
	case RoleResetZoom:
		return r.ResetZoom
	case RoleToggleFullscreen:
		return r.ToggleFullscreen
	case RoleAbout:
		return r.About
	default:
		return nil
	}
}

// Render walks a template tree into a native menu.
func Render(app *application.App, items []Item, roles RoleActions) *application.Menu {
	native := app.NewMenu()
	renderInto(native, items, roles)
	return native
}

func renderInto(native *application.Menu, items []Item, roles RoleActions) {
	for _, item := range items {
		switch item.Type {
		case TypeSeparator:
			native.AddSeparator()
		case TypeSubmenu:
			sub := native.AddSubmenu(item.Label)
			renderInto(sub, item.Items, roles)
		case TypeCheckbox:
			wireClick(native.AddCheckbox(item.Label, item.Checked), item.Accelerator, item.OnClick)
		case TypeRadio:
			wireClick(native.AddRadio(item.Label, item.Checked), item.Accelerator, item.OnClick)
		case TypeRole:
			wireClick(native.Add(item.Label), item.Accelerator, roles.action(item.Role))
		default:
			wireClick(native.Add(item.Label), item.Accelerator, item.OnClick)
		}
	}
}

func wireClick(native *application.MenuItem, accelerator string, onClick func()) {
	if accelerator != "" {
		native.SetAccelerator(accelerator)
	}
	if onClick != nil {
		native.OnClick(func(_ *application.Context) {
			onClick()
		})
	}
}
