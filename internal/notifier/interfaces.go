package notifier

// INotifier delivers templated notifications to a single recipient.
type INotifier interface {
	NotifyFromTemplate(to string, subject string, templateName string, data any) error
}
