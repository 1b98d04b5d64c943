package wire

import "github.com/clogwench/wincore/uid"

// The New* helpers build a Command with exactly one variant populated and
// its Kind tag set, mirroring the teacher's per-event constructor
// convention (cogentcore.org/core/events: NewMouse, NewKey, ...).

func NewAppConnect() Command { return Command{Kind: KindAppConnect, AppConnect: &AppConnect{}} }

func NewAppConnectResponse(appID uid.ID) Command {
	return Command{Kind: KindAppConnectResponse, AppConnectResponse: &AppConnectResponse{AppID: appID}}
}

func NewWMConnect() Command { return Command{Kind: KindWMConnect, WMConnect: &WMConnect{}} }

func NewWMConnectResponse() Command {
	return Command{Kind: KindWMConnectResponse, WMConnectResponse: &WMConnectResponse{}}
}

func NewOpenWindowResponse(v OpenWindowResponse) Command {
	return Command{Kind: KindOpenWindowResponse, OpenWindowResponse: &v}
}

func NewCloseWindowResponse(v CloseWindowResponse) Command {
	return Command{Kind: KindCloseWindowResponse, CloseWindowResponse: &v}
}

func NewAppDisconnected(v AppDisconnected) Command {
	return Command{Kind: KindAppDisconnected, AppDisconnected: &v}
}

func NewWindowManagerDisconnected() Command {
	return Command{Kind: KindWindowManagerDisconnected, WindowManagerDisconnected: &WindowManagerDisconnected{}}
}

func NewWindowResized(v WindowResized) Command {
	return Command{Kind: KindWindowResized, WindowResized: &v}
}

func NewOpenWindowCommand(wt WindowType, b Bounds, title string) Command {
	return Command{
		Kind: KindOpenWindowCommand,
		OpenWindowCommand: &OpenWindowCommand{
			WindowType:  wt,
			Bounds:      b,
			WindowTitle: title,
		},
	}
}

func NewDrawRectCommand(v DrawRectCommand) Command {
	return Command{Kind: KindDrawRectCommand, DrawRectCommand: &v}
}

func NewDrawImageCommand(v DrawImageCommand) Command {
	return Command{Kind: KindDrawImageCommand, DrawImageCommand: &v}
}

func NewKeyDown(v KeyDown) Command { return Command{Kind: KindKeyDown, KeyDown: &v} }
func NewKeyUp(v KeyUp) Command     { return Command{Kind: KindKeyUp, KeyUp: &v} }

func NewMouseDown(v MouseDown) Command { return Command{Kind: KindMouseDown, MouseDown: &v} }
func NewMouseMove(v MouseMove) Command { return Command{Kind: KindMouseMove, MouseMove: &v} }
func NewMouseUp(v MouseUp) Command     { return Command{Kind: KindMouseUp, MouseUp: &v} }

func NewSystemShutdown() Command {
	return Command{Kind: KindSystemShutdown, SystemShutdown: &SystemShutdown{}}
}

func NewDebug(payload DebugPayload) Command {
	return Command{Kind: KindDebug, Debug: &Debug{Payload: payload}}
}
