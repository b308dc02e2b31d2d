package domain

import "testing"

func TestValidationResult(t *testing.T) {
	result := Valid()
	if !result.IsValid() {
		t.Fatalf("Valid() should be valid")
	}

	result.Add("name is taken")
	if result.IsValid() {
		t.Fatalf("result with errors should be invalid")
	}

	other := Invalid("chapter order broken", "bad tier")
	if other.IsValid() {
		t.Fatalf("Invalid() should be invalid")
	}

	result.Merge(other)
	if len(result.Errors) != 3 {
		t.Fatalf("merged errors = %v", result.Errors)
	}
	if result.Errors[0] != "name is taken" {
		t.Fatalf("merge should keep order, got %v", result.Errors)
	}
}
