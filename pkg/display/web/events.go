package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame is followed by the cache index (uint16, little endian),
	// a byte set to 1 if the frame is brotli compressed, and the frame.
	Frame Type = iota
	// FrameCache is followed by the cache index of a frame the client
	// has already received.
	FrameCache
	// ClientInfo is followed by the info byte and the client's ID.
	ClientInfo
	// ServerInfo is followed by the ID and round trip time in
	// milliseconds (uint16, little endian) of every client.
	ServerInfo
	// TitleInfo is followed by the window title.
	TitleInfo
)

// Control is the first byte of every message read from a client.
type Control = uint8

const (
	_ Control = iota
	Pause
	Resume
	Step
	// Compression is followed by 1 to enable compression, or 0.
	Compression
	Closing Control = 255
)
