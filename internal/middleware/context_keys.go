package middleware

import "context"

// actorKey is the key used to store the authenticated caller identity
// (the Discord-facing service's subject claim) in the request context.
const actorKey = contextKey("actor")

// GetActorFromCtx retrieves the authenticated caller identity from the
// context. It returns the identity and a boolean indicating if it was found.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}
