package schema

import "testing"

var allTypes = []ColumnType{TypeString, TypeInteger, TypeFloat, TypeBoolean}

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want ColumnType
	}{
		{TypeInteger, TypeInteger, TypeInteger},
		{TypeInteger, TypeFloat, TypeFloat},
		{TypeInteger, TypeString, TypeString},
		{TypeInteger, TypeBoolean, TypeString},
		{TypeFloat, TypeFloat, TypeFloat},
		{TypeFloat, TypeString, TypeString},
		{TypeFloat, TypeBoolean, TypeString},
		{TypeBoolean, TypeBoolean, TypeBoolean},
		{TypeBoolean, TypeString, TypeString},
		{TypeString, TypeString, TypeString},
	}

	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestJoin_Commutative(t *testing.T) {
	for _, a := range allTypes {
		for _, b := range allTypes {
			if Join(a, b) != Join(b, a) {
				t.Errorf("Join(%s, %s) != Join(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestJoin_Associative(t *testing.T) {
	for _, a := range allTypes {
		for _, b := range allTypes {
			for _, c := range allTypes {
				left := Join(Join(a, b), c)
				right := Join(a, Join(b, c))
				if left != right {
					t.Errorf("Join(Join(%s, %s), %s) = %s, Join(%s, Join(%s, %s)) = %s",
						a, b, c, left, a, b, c, right)
				}
			}
		}
	}
}

func TestJoin_StringAbsorbing(t *testing.T) {
	for _, x := range allTypes {
		if got := Join(TypeString, x); got != TypeString {
			t.Errorf("Join(STRING, %s) = %s, want STRING", x, got)
		}
	}
}
