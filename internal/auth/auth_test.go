package auth

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
)

func TestRequireUID(t *testing.T) {
	ctx := WithUID(context.Background(), "u1")
	uid, err := RequireUID(ctx)
	if err != nil || uid != "u1" {
		t.Errorf("RequireUID = (%q, %v), want (u1, nil)", uid, err)
	}

	if _, err := RequireUID(context.Background()); !errors.IsUnauthorized(err) {
		t.Errorf("RequireUID without uid = %v, want unauthorized", err)
	}

	if _, err := RequireUID(WithUID(context.Background(), "")); !errors.IsUnauthorized(err) {
		t.Errorf("RequireUID with empty uid = %v, want unauthorized", err)
	}
}

func TestCheckOwnership(t *testing.T) {
	ctx := WithUID(context.Background(), "u1")

	if err := CheckOwnership(ctx, "u1"); err != nil {
		t.Errorf("owner access rejected: %v", err)
	}
	if err := CheckOwnership(ctx, "u2"); !errors.IsForbidden(err) {
		t.Errorf("cross-user access = %v, want forbidden", err)
	}

	admin := context.WithValue(ctx, UserRoleKey, RoleAdmin)
	if err := CheckOwnership(admin, "u2"); err != nil {
		t.Errorf("admin access rejected: %v", err)
	}
}
