package protocol

// Custom methods outside of the LSP protocol, exposed to the editor host.
const (
	// MethodHintsSetup replaces the active hint configuration for the session.
	MethodHintsSetup = "hints/setup"
	// MethodHintsShow enables hint rendering; hints reappear on the next
	// trigger event, no fetch is issued by the call itself.
	MethodHintsShow = "hints/show"
	// MethodHintsHide disables hint rendering and clears existing markers.
	MethodHintsHide = "hints/hide"
	// MethodHintsToggle flips between the show and hide states.
	MethodHintsToggle = "hints/toggle"

	// MethodRequestFullShutdown ends the daemon process rather than a single session.
	MethodRequestFullShutdown = "hintd/requestFullShutdown"
)
