package observability

// NoOpObserver is an Observer that discards every operation.
type NoOpObserver struct{}

// ObserveOperation does nothing.
func (n *NoOpObserver) ObserveOperation(ctx OperationContext) {}

// NewNoOpObserver creates a new NoOpObserver.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}

// multiObserver fans each operation out to several observers in order.
type multiObserver []Observer

func (m multiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}

// Multi returns an Observer that forwards to every non-nil observer given.
// With no usable observers it returns a NoOpObserver.
func Multi(observers ...Observer) Observer {
	var usable multiObserver
	for _, o := range observers {
		if o != nil {
			usable = append(usable, o)
		}
	}
	switch len(usable) {
	case 0:
		return NewNoOpObserver()
	case 1:
		return usable[0]
	default:
		return usable
	}
}
