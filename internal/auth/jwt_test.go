package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("got user ID %d, want 42", userID)
	}
}

func TestMFATokenScopeIsolation(t *testing.T) {
	Init("test-secret")

	mfaToken, err := GenerateMFAToken(7)
	if err != nil {
		t.Fatalf("GenerateMFAToken: %v", err)
	}

	// The interim token must not open the API.
	if _, err := ValidateToken(mfaToken); err == nil {
		t.Error("ValidateToken accepted an MFA-scoped token")
	}

	userID, err := ValidateMFAToken(mfaToken)
	if err != nil {
		t.Fatalf("ValidateMFAToken: %v", err)
	}
	if userID != 7 {
		t.Errorf("got user ID %d, want 7", userID)
	}

	// And a full token must not pass the MFA challenge endpoint.
	fullToken, err := GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateMFAToken(fullToken); err == nil {
		t.Error("ValidateMFAToken accepted a full-scoped token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	Init("first-secret")
	token, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	Init("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("ValidateToken accepted a token signed with a different secret")
	}
}
