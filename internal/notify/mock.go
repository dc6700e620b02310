package notify

// MockNotifier implements Notifier for testing. Sent records every payload
// passed to Notify, including failed ones.
type MockNotifier struct {
	NotifyFunc func(p Payload) error
	Sent       []Payload
}

// Notify records p and delegates to NotifyFunc when set
func (m *MockNotifier) Notify(p Payload) error {
	m.Sent = append(m.Sent, p)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(p)
	}
	return nil
}
