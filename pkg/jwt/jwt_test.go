package jwt

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "Alice", "device-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserName != "Alice" || claims.DeviceID != "device-1" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Errorf("ValidateToken() with wrong secret should fail")
	}
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Errorf("ValidateToken() with garbage should fail")
	}
}
