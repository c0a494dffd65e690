package token

import (
	"testing"
)

// Test looking up keywords succeeds, and unknown words become IDENT.
func TestLookup(t *testing.T) {

	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(string(key)) != val {
			t.Errorf("Lookup of %s failed", key)
		}

	}

	if LookupIdentifier("counter") != IDENT {
		t.Errorf("expected an unknown word to resolve to IDENT")
	}
}

func TestIsTypeKeyword(t *testing.T) {
	types := []Type{VOID, CHAR, SHORT, INT_KW, LONG, FLOAT, DOUBLE}
	for _, ty := range types {
		if !IsTypeKeyword(ty) {
			t.Errorf("expected %s to be a type keyword", ty)
		}
	}

	notTypes := []Type{IDENT, INT, RETURN, IF, PLUS}
	for _, ty := range notTypes {
		if IsTypeKeyword(ty) {
			t.Errorf("did not expect %s to be a type keyword", ty)
		}
	}
}
