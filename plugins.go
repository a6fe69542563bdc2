package main

import (
	"fmt"

	"github.com/wailsapp/wails/v3/pkg/application"

	"strum/internal/config"
	"strum/internal/css"
	"strum/internal/plugin"
	"strum/internal/webview"
)

// pageControls drive the web player by script. The page keeps the real
// playback state; these are fire-and-forget commands.
type pageControls struct {
	view webview.View
}

func newPageControls(view webview.View) *pageControls {
	return &pageControls{view: view}
}

func (c *pageControls) PlayPause() {
	c.view.ExecJS(`(function(){
var m = document.querySelector("video, audio");
if (!m) return;
if (m.paused) { m.play(); } else { m.pause(); }
})();`)
}

func (c *pageControls) Next() {
	c.view.ExecJS(`(function(){
var b = document.querySelector(".next-button, [aria-label='Next']");
if (b) b.click();
})();`)
}

func (c *pageControls) Previous() {
	c.view.ExecJS(`(function(){
var b = document.querySelector(".previous-button, [aria-label='Previous']");
if (b) b.click();
})();`)
}

// adblockCSS blanks the ad surfaces of the hosted player.
const adblockCSS = `
ytmusic-popup-container tp-yt-paper-dialog,
#player-ads,
.ytmusic-mealbar-promo-renderer,
ytd-display-ad-renderer,
.video-ads {
	display: none !important;
}
`

// navigationCSS makes room for the injected back/forward buttons.
const navigationCSS = `
ytmusic-nav-bar .left-content {
	margin-left: 72px;
}
`

// navigationJS adds in-page history buttons; the remote player has none.
const navigationJS = `(function(){
if (document.getElementById("strum-nav")) return;
var nav = document.createElement("div");
nav.id = "strum-nav";
nav.style.cssText = "position:fixed;top:8px;left:8px;z-index:10000;display:flex;gap:4px;";
[["<", function(){ history.back(); }], [">", function(){ history.forward(); }]].forEach(function(def){
	var b = document.createElement("button");
	b.textContent = def[0];
	b.style.cssText = "width:28px;height:28px;border:none;border-radius:4px;background:#333;color:#fff;cursor:pointer;";
	b.addEventListener("click", def[1]);
	nav.appendChild(b);
});
document.body.appendChild(nav);
})();`

// nowPlayingJS watches the page's media element and song metadata and emits
// snapshots over the event bridge.
func nowPlayingJS(eventName string) string {
	return fmt.Sprintf(`(function(){
if (window.__strumNowPlaying) return;
window.__strumNowPlaying = true;
function snapshot() {
	var m = document.querySelector("video, audio");
	var md = (navigator.mediaSession && navigator.mediaSession.metadata) || {};
	return {
		playing: !!(m && !m.paused),
		title: md.title || document.title || "",
		artist: md.artist || "",
		album: md.album || ""
	};
}
var last = "";
setInterval(function(){
	var s = snapshot();
	var key = JSON.stringify(s);
	if (key === last) return;
	last = key;
	if (window.wails && window.wails.Events) { window.wails.Events.Emit({name: %s, data: s}); }
}, 1000);
})();`, jsString(eventName))
}

// notifyJS surfaces track changes as desktop notifications. The configured
// urgency maps onto notification behavior: low is silent, critical stays up
// until dismissed.
func notifyJS(urgency string) string {
	return fmt.Sprintf(`(function(){
if (window.__strumNotify) return;
window.__strumNotify = true;
if (window.Notification && Notification.permission === "default") { Notification.requestPermission(); }
var lastTitle = "";
setInterval(function(){
	var md = navigator.mediaSession && navigator.mediaSession.metadata;
	if (!md || !md.title || md.title === lastTitle) return;
	lastTitle = md.title;
	if (window.Notification && Notification.permission === "granted") {
		new Notification(md.title, {body: md.artist || "", silent: %t, requireInteraction: %t});
	}
}, 1000);
})();`, urgency == "low", urgency == "critical")
}

// registerPlugins wires each enabled plugin's page-side behavior and its menu
// contribution. Enablement changes take effect after the restart the config
// store triggers.
func registerPlugins(
	app *application.App,
	store *config.Store,
	registry *plugin.Registry,
	view webview.View,
	injector *css.Injector,
) {
	registry.RegisterMenu("downloader", plugin.DownloaderMenu(store, func(name string, payload any) {
		app.Event.Emit(name, payload)
	}))
	registry.RegisterMenu("notifications", plugin.NotificationsMenu(store))

	if store.IsEnabled("adblocker") {
		injector.ScheduleInline(adblockCSS, nil)
	}

	if store.IsEnabled("navigation") {
		injector.ScheduleInline(navigationCSS, nil)
		view.OnContentLoaded(func() {
			view.ExecJS(navigationJS)
		})
	}

	if store.IsEnabled("notifications") {
		urgency, _ := store.PluginOptions("notifications")["urgency"].(string)
		view.OnContentLoaded(func() {
			view.ExecJS(notifyJS(urgency))
		})
	}

	if store.IsEnabled("taskbar-mediacontrol") || store.IsEnabled("notifications") {
		view.OnContentLoaded(func() {
			view.ExecJS(nowPlayingJS(EventNowPlaying))
		})
	}
}
