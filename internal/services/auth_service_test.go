package services_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"patharwalay/internal/domain"
	"patharwalay/internal/services"
)

func TestAuthUnprotectedInstance(t *testing.T) {
	svc := services.NewAuthService(&fakeSettingsStore{})
	ctx := context.Background()

	protected, err := svc.Protected(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if protected {
		t.Fatal("instance without a secret must be unprotected")
	}
	ok, err := svc.Verify(ctx, "anything")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("verify should not claim success when no secret exists")
	}
}

func TestAuthVerifyBcryptSecret(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.DefaultCost)
	svc := services.NewAuthService(&fakeSettingsStore{doc: domain.SiteSettings{AdminPass: string(hash)}})
	ctx := context.Background()

	if ok, _ := svc.Verify(ctx, "open sesame"); !ok {
		t.Fatal("correct credential rejected")
	}
	if ok, _ := svc.Verify(ctx, "wrong"); ok {
		t.Fatal("wrong credential accepted")
	}
	if p, _ := svc.Protected(ctx); !p {
		t.Fatal("instance with a secret must be protected")
	}
}

func TestAuthVerifyLegacyPlaintextSecret(t *testing.T) {
	svc := services.NewAuthService(&fakeSettingsStore{doc: domain.SiteSettings{AdminPass: "legacy-pass"}})
	ctx := context.Background()

	if ok, _ := svc.Verify(ctx, "legacy-pass"); !ok {
		t.Fatal("legacy plaintext secret rejected")
	}
	if ok, _ := svc.Verify(ctx, "legacy-pas"); ok {
		t.Fatal("near-miss accepted")
	}
}
