package realtime

// Callback receives normalized change events matching a subscription.
type Callback func(payload Payload)

// ColumnFilter is a column-level refinement attached to a subscription. It
// is advisory metadata carried into the connection URL; the client does not
// evaluate it against dispatched payloads.
type ColumnFilter struct {
	Column   string
	Operator string
	Value    string
}

// subscription is one registered interest within a channel. It lives until
// the channel unsubscribes.
type subscription struct {
	event    EventType
	table    string
	filters  []ColumnFilter
	callback Callback
}

// matches implements the dispatch rule: the event filter must be the
// wildcard or equal the payload's event type, and the table filter, when
// set, must equal the payload's table.
func (s *subscription) matches(payload Payload) bool {
	if s.event != EventAll && s.event != payload.EventType {
		return false
	}
	if s.table != "" && s.table != payload.Table {
		return false
	}
	return true
}
