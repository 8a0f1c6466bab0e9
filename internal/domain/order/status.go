package order

// Status is the kitchen workflow state of an order. The sequence is strictly
// linear: pending → in_progress → ready → completed, with no backward or
// skipping transitions. Completed is terminal.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusReady
	StatusCompleted
)

// statusInfo is the single source of truth for the workflow: wire form,
// display label, board sort priority, forward transition, and the label of
// the button that triggers it.
var statusInfo = [...]struct {
	wire     string
	label    string
	priority int
	next     Status
	hasNext  bool
	action   string
}{
	StatusPending:    {wire: "pending", label: "Pending", priority: 1, next: StatusInProgress, hasNext: true, action: "Start Cooking"},
	StatusInProgress: {wire: "in_progress", label: "In Progress", priority: 2, next: StatusReady, hasNext: true, action: "Mark Ready"},
	StatusReady:      {wire: "ready", label: "Ready", priority: 3, next: StatusCompleted, hasNext: true, action: "Complete Order"},
	StatusCompleted:  {wire: "completed", label: "Completed", priority: 4},
}

// Statuses lists all workflow states in sequence order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusReady, StatusCompleted}
}

// ParseStatus maps a wire string to a Status. Unknown values fall back to
// StatusPending so a malformed order still displays and sorts first.
func ParseStatus(s string) Status {
	for st, info := range statusInfo {
		if info.wire == s {
			return Status(st)
		}
	}
	return StatusPending
}

// String returns the wire form used by the upstream API.
func (s Status) String() string { return statusInfo[s].wire }

// Label returns the human-readable display name.
func (s Status) Label() string { return statusInfo[s].label }

// Priority returns the board sort rank: pending=1 through completed=4.
func (s Status) Priority() int { return statusInfo[s].priority }

// Next returns the single forward transition and true, or false when the
// status is terminal.
func (s Status) Next() (Status, bool) {
	return statusInfo[s].next, statusInfo[s].hasNext
}

// Action returns the label of the button that advances the order out of
// this status, or "" for the terminal status.
func (s Status) Action() string { return statusInfo[s].action }

// CanAdvanceTo reports whether next is the legal forward transition from s.
func (s Status) CanAdvanceTo(next Status) bool {
	n, ok := s.Next()
	return ok && n == next
}
