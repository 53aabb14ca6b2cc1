package types

// ------------------------
// Replies (one JSON line each)
// ------------------------

// StatusReply is sent once after the self-test.
type StatusReply struct {
	Status string `json:"status"`
}

// SuccessReply acknowledges an applied command.
type SuccessReply struct {
	Success bool `json:"success"`
}

// ErrorReply carries a short diagnostic for a failed decode.
type ErrorReply struct {
	Error string `json:"error"`
}

const StatusReady = "ready"

// Ready, Success and Failure build the three outbound documents.
func Ready() StatusReply            { return StatusReply{Status: StatusReady} }
func Success() SuccessReply         { return SuccessReply{Success: true} }
func Failure(msg string) ErrorReply { return ErrorReply{Error: msg} }
