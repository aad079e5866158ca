package gateway

import (
	"context"
	"encoding/json"
)

// Profile fetches the caller's profile from the auth service.
// The auth service wraps payloads as {success, data, message}; a null or
// mistyped data field means no authenticated user and returns (nil, nil).
// Only transport/HTTP failures return an error.
func (c *Client) Profile(ctx context.Context, token string) (Profile, error) {
	var env envelope
	if err := c.getJSON(ctx, "auth-service", c.auth, "/api/auth/me", nil, token, &env); err != nil {
		return nil, err
	}

	if env.dataIsAbsent() {
		c.logger.Debug("no authenticated user data in auth response")
		return nil, nil
	}

	var profile Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		// Shape surprise: logged and treated as absence, never raised.
		c.logger.Warn("unexpected profile payload shape", "error", err)
		return nil, nil
	}
	return profile, nil
}
