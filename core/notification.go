package core

// Notification severities.
const (
	SeverityInfo  = "info"
	SeverityError = "error"
)

// Notification is the user-visible outcome of a validated submit or delete.
// Exactly one is emitted per outcome; presentation is up to the consumer.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Notifier is any fire-and-forget notification sink.
type Notifier interface {
	Notify(n Notification)
}
