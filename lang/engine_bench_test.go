package lang

import (
	"context"
	"testing"
)

func BenchmarkEngine_Execute(b *testing.B) {
	tests := []struct {
		name    string
		formula string
	}{
		{"plain", "Hello world"},
		{"variable", "Hello, $name"},
		{"block", formulaPleaseWait},
		{"alias", formulaReminder},
		{"coupons", formulaCoupons},
	}

	e, err := New()
	if err != nil {
		b.Fatalf("New() error: %v", err)
	}

	e.Assign("name", "Stan")
	e.Assign("comment", "Check his payment")
	e.Assign("date", "today")
	e.Assign("time", "11:30 AM")
	e.Enable("target")
	e.Enable("one")

	ctx := context.Background()

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				_ = e.Execute(ctx, tt.formula, WithCollapse(true))
			}
		})
	}
}

func BenchmarkParse_Nested(b *testing.B) {
	formula := "$[$[$[$[$[$a ## b] ## c] ## d] ## e] ## f] tail"
	tokens := DefaultTokens()
	ctx := context.Background()

	for b.Loop() {
		if _, err := Parse(ctx, formula, tokens); err != nil {
			b.Fatal(err)
		}
	}
}
