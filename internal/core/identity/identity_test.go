package identity

import (
	"context"
	"testing"
	"time"
)

func TestContextRoundTrip(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("empty context must carry no identity")
	}

	id := Identity{
		Subject:   "alice",
		Roles:     []string{"ROLE_MEMBER"},
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	ctx := WithIdentity(context.Background(), id)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("identity not found")
	}
	if got.Subject != "alice" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
}

func TestHasRole(t *testing.T) {
	id := Identity{Roles: []string{"ROLE_MEMBER", "ROLE_ADMIN"}}
	if !id.HasRole("ROLE_ADMIN") {
		t.Fatalf("expected ROLE_ADMIN")
	}
	if id.HasRole("ROLE_OWNER") {
		t.Fatalf("unexpected ROLE_OWNER")
	}
}
