package instance

import "os"

// GetID returns the running instance identifier. Heroku-style dynos set
// DYNO; other platforms can set INSTANCE_ID.
func GetID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if id := os.Getenv("INSTANCE_ID"); id != "" {
		return id
	}
	return "local"
}
