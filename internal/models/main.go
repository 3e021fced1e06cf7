package models

// ModelRegistry lists every model subject to auto-migration in development.
var ModelRegistry = []interface{}{
	&WaitlistEntrant{},
}
