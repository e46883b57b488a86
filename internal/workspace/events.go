package workspace

// EventSink receives run progress. Implementations must tolerate calls
// from multiple goroutines: UnitFinished arrives from the worker pool.
type EventSink interface {
	RunStarted(total, stale int)
	UnitFinished(path string, diagnostics int)
	RunFinished(passed bool)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RunStarted(total, stale int)               {}
func (NopSink) UnitFinished(path string, diagnostics int) {}
func (NopSink) RunFinished(passed bool)                   {}

// EventKind discriminates Event values on a channel.
type EventKind uint8

const (
	EventRunStarted EventKind = iota
	EventUnitFinished
	EventRunFinished
)

// Event is the channel form of the sink callbacks, for consumers that
// render progress on their own goroutine.
type Event struct {
	Kind        EventKind
	Path        string
	Diagnostics int
	Total       int
	Stale       int
	Passed      bool
}

// ChannelSink forwards events into a channel. The channel should be
// buffered; sends block the worker otherwise.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) RunStarted(total, stale int) {
	s.Ch <- Event{Kind: EventRunStarted, Total: total, Stale: stale}
}

func (s ChannelSink) UnitFinished(path string, diagnostics int) {
	s.Ch <- Event{Kind: EventUnitFinished, Path: path, Diagnostics: diagnostics}
}

func (s ChannelSink) RunFinished(passed bool) {
	s.Ch <- Event{Kind: EventRunFinished, Passed: passed}
}
