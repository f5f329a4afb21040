package engine

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func CountEvents(events []Event, eventType EventType) int {
	n := 0
	for _, event := range events {
		if event.Type == eventType {
			n++
		}
	}
	return n
}

// EventLog is an Observer that keeps every event in order.
type EventLog struct {
	Events []Event
}

func (l *EventLog) Notify(e Event) {
	l.Events = append(l.Events, e)
}

// Drain returns the collected events and empties the log.
func (l *EventLog) Drain() []Event {
	out := l.Events
	l.Events = nil
	return out
}
