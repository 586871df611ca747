package calendar

// Filter narrows a calendar view to one leave type or one event type.
// The two kinds are mutually exclusive: a leave-type filter drops all
// events from the buckets and vice versa.
type Filter interface {
	isFilter()
}

type AllFilter struct{}

type LeaveTypeFilter struct {
	Kind string
}

type EventTypeFilter struct {
	Kind string
}

func (AllFilter) isFilter()       {}
func (LeaveTypeFilter) isFilter() {}
func (EventTypeFilter) isFilter() {}
