package core

// Subscriber abstracts one connection's outbound channel: a targeted
// send plus a close, owned and closed by the adapter that created it
// (internal/ws), never by core or registry. Grounded on the teacher's
// SignalConnection interface (internal/core/signal_iface.go,
// now removed in favor of this consolidated transport.go) — same
// TrySend/Close shape, generalized from raw Frame bytes to anything
// JSON-marshalable via TrySend's []byte payload (the caller marshals).
type Subscriber interface {
	TrySend(payload []byte) error
	Close()
}
