// Package daemon delivers segments to the X-Ray daemon over UDP.
//
// The daemon expects one datagram per document: the header line
// {"format":"json","version":1}, a newline, then the JSON segment document
// produced by the segment package. Client implements segment.Submitter, so a
// finished tree is handed over with root.Submit(client).
//
// # Configuration
//
// LoadConfig reads AWS_XRAY_DAEMON_ADDRESS, XRAY_MAX_PACKET_SIZE and
// XRAY_WRITE_TIMEOUT. The address may be "host:port" or the
// "tcp:host:port udp:host:port" pair the daemon documents.
//
// # Large Segments
//
// A document over MaxPacketSize is split into an in-progress parent, one
// independent subsegment document per child, and the completed parent.
//
// # Errors
//
// SubmitSegment reports encoding and write failures, and Segment.Submit
// discards them. Callers that need delivery feedback call SubmitSegment
// directly or attach an observability.Observer.
package daemon
