package token

import (
	"strings"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	// Sign with HS512 under the correct secret. The parser pins HS256.
	access, _ := testSecrets()
	claims := Claims{
		TokenType: string(KindAccess),
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  gjwt.NewNumericDate(time.Now()),
		},
	}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS512, claims)
	raw, err := tok.SignedString(access)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Parse(raw, KindAccess); err == nil {
		t.Fatal("expected wrong algorithm to be rejected")
	}
}

func TestParseRejectsAlgNone(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	claims := Claims{
		TokenType: string(KindAccess),
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims)
	raw, err := tok.SignedString(gjwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Parse(raw, KindAccess); err == nil {
		t.Fatal("expected alg=none to be rejected")
	}
}

func TestParseRejectsMissingExpiration(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	access, _ := testSecrets()
	claims := Claims{
		TokenType: string(KindAccess),
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: gjwt.NewNumericDate(time.Now()),
		},
	}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString(access)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Parse(raw, KindAccess); err == nil {
		t.Fatal("expected token without exp to be rejected")
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	access, _ := testSecrets()
	claims := Claims{
		TokenType: string(KindAccess),
		RegisteredClaims: gjwt.RegisteredClaims{
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  gjwt.NewNumericDate(time.Now()),
		},
	}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString(access)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Parse(raw, KindAccess); err != ErrEmptySubject {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}

func TestParseRejectsTamperedPayload(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	raw, err := m.Issue(KindAccess, "user-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", raw)
	}

	// Any payload byte flip must break the signature.
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.Parse(tampered, KindAccess); err == nil {
		t.Fatal("expected tampered payload to be rejected")
	}
}

func TestParseEnforcesIssuerWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Issuer = "goidentity"

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	raw, err := m.Issue(KindAccess, "user-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Parse(raw, KindAccess); err != nil {
		t.Fatalf("expected own issuer to parse: %v", err)
	}

	other := testConfig()
	other.Issuer = "someone-else"
	foreign, err := NewManager(other)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	foreignRaw, err := foreign.Issue(KindAccess, "user-1", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := m.Parse(foreignRaw, KindAccess); err == nil {
		t.Fatal("expected wrong issuer to fail")
	}
}
