package wire

// DebugPayload constructors, one per debug sub-variant.

func NewRequestServerShutdown() DebugPayload {
	return DebugPayload{Kind: KindRequestServerShutdown, RequestServerShutdown: &RequestServerShutdown{}}
}

func NewScreenCapture(path string) DebugPayload {
	return DebugPayload{Kind: KindScreenCapture, ScreenCapture: &ScreenCapture{Path: path}}
}

func NewScreenCaptureResponse(path string) DebugPayload {
	return DebugPayload{Kind: KindScreenCaptureResponse, ScreenCaptureResponse: &ScreenCaptureResponse{Path: path}}
}

func NewBackgroundReceivedMouseEvent(x, y int32) DebugPayload {
	return DebugPayload{
		Kind:                         KindBackgroundReceivedMouse,
		BackgroundReceivedMouseEvent: &BackgroundReceivedMouseEvent{X: x, Y: y},
	}
}

func NewAppConnectedDebug(v AppConnectedDebug) DebugPayload {
	return DebugPayload{Kind: KindAppConnectedDebug, AppConnectedDebug: &v}
}

func NewAppDisconnectedDebug(v AppDisconnectedDebug) DebugPayload {
	return DebugPayload{Kind: KindAppDisconnectedDebug, AppDisconnectedDebug: &v}
}

func NewLog(message string) DebugPayload {
	return DebugPayload{Kind: KindLog, Log: &Log{Message: message}}
}
