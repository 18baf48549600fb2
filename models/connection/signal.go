package connection

// Codes of the frames sent on a spectator stream.
const (
	CodeMatchStarted uint8 = iota
	CodeTurn
	CodeMatchEnded

	// the requested strategies could not be built
	CodeInvalidStrategy

	// the match stopped before a winner was found
	CodeMatchAborted
)
