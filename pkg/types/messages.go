package types

// Message types of the websocket protocol.
const (
	MsgInput         = "input"
	MsgRestart       = "restart"
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)

// Client -> Server
// input:
//   team: "red" | "blue"
//   command: "left" | "right" | "confirm"
//
// restart: {}

// Server -> Client
// StateSnapshot:
//   version: number
//   state: see snapshot.go
//   events: Event[] // what happened since the previous version, in order
//
// Error:
//   error: string
