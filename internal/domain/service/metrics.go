package service

// AuthMetrics records authentication and reconciliation outcomes.
type AuthMetrics interface {
	// ObserveAuthentication counts a gate decision by path ("local", "external") and result code.
	ObserveAuthentication(path, result string)

	// ObserveReconciliation counts a reconcile outcome ("existing", "linked", "created", "conflict", "failed").
	ObserveReconciliation(outcome string)

	// ObserveWebhook counts a processed webhook by event type and result.
	ObserveWebhook(eventType, result string)
}
