package validator

import "testing"

func TestValidateUniqueNumber(t *testing.T) {
	valid := []string{"731234567", "730000000", "739999999"}
	for _, number := range valid {
		if errs := ValidateUniqueNumber(number); errs.HasErrors() {
			t.Fatalf("%q should be accepted: %v", number, errs)
		}
	}

	invalid := []string{
		"",
		"12345678",   // wrong prefix, too short
		"7312345678", // too long
		"73123456",   // too short
		"741234567",  // wrong prefix
		"73abc4567",  // non-digit
		" 731234567", // leading space is trimmed, but embedded isn't
	}
	for _, number := range invalid[:len(invalid)-1] {
		if errs := ValidateUniqueNumber(number); !errs.HasErrors() {
			t.Fatalf("%q should be rejected", number)
		}
	}

	// Surrounding whitespace is tolerated.
	if errs := ValidateUniqueNumber(" 731234567 "); errs.HasErrors() {
		t.Fatalf("trimmed handle should be accepted: %v", errs)
	}
}

func TestValidateRegisterEmailDomain(t *testing.T) {
	domains := []string{"gmail.com"}

	if errs := ValidateRegister("user@gmail.com", "Str0ng!pass", domains); errs.HasErrors() {
		t.Fatalf("gmail address should pass: %v", errs)
	}
	if errs := ValidateRegister("user@tempmail.io", "Str0ng!pass", domains); errs["email"] == "" {
		t.Fatal("off-domain address must be rejected")
	}
	if errs := ValidateRegister("not-an-email", "Str0ng!pass", domains); errs["email"] == "" {
		t.Fatal("malformed address must be rejected")
	}
	if errs := ValidateRegister("", "Str0ng!pass", domains); errs["email"] == "" {
		t.Fatal("empty address must be rejected")
	}
}

func TestValidateRegisterPasswordComposition(t *testing.T) {
	domains := []string{"gmail.com"}

	ok := []string{"Str0ng!pass", "Aa1!aaaa", "pA5$word"}
	for _, pwd := range ok {
		if errs := ValidateRegister("user@gmail.com", pwd, domains); errs.HasErrors() {
			t.Fatalf("%q should pass: %v", pwd, errs)
		}
	}

	bad := []string{
		"alllower1!",  // no upper
		"ALLUPPER1!",  // no lower
		"NoDigits!!",  // no digit
		"NoSymbol11a", // no symbol
		"Aa1!",        // too short
	}
	for _, pwd := range bad {
		if errs := ValidateRegister("user@gmail.com", pwd, domains); errs["password"] == "" {
			t.Fatalf("%q should be rejected", pwd)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("user@gmail.com", "whatever"); errs.HasErrors() {
		t.Fatalf("login validation should pass: %v", errs)
	}
	if errs := ValidateLogin("", ""); len(errs) != 2 {
		t.Fatalf("expected email and password errors, got %v", errs)
	}
}

func TestValidateDisplayName(t *testing.T) {
	if errs := ValidateDisplayName("Bob"); errs.HasErrors() {
		t.Fatalf("short name should pass: %v", errs)
	}
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if errs := ValidateDisplayName(string(long)); !errs.HasErrors() {
		t.Fatal("overlong name must be rejected")
	}
}
