package messagequeue

// Publisher defines the interface for publishing events to a message
// queue. The only producer in this application is the contact form, which
// emits one event per stored message so downstream consumers (notifiers,
// CRM imports) can react without polling Firestore.
type Publisher interface {
	Publish(queueName string, body []byte) error
	Close() error
}
