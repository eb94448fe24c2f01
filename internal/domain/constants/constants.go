// Package constants holds string values shared across layers.
package constants

const (
	EnvDevelop    = "development"
	EnvProduction = "production"
)

// Event publisher providers
const (
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderGoCloud  = "gocloud"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// Profile cache providers
const (
	ProfileCacheProviderRedis = "redis"
)

// Clerk webhook event types
const (
	ClerkEventUserCreated = "user.created"
	ClerkEventUserUpdated = "user.updated"
	ClerkEventUserDeleted = "user.deleted"
)
