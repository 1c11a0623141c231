package domain

import "testing"

func TestParseProduct(t *testing.T) {
	tests := []struct {
		input   string
		want    Product
		wantErr bool
	}{
		{input: "STANDARD", want: ProductStandard},
		{input: "trial", want: ProductTrial},
		{input: " cheap ", want: ProductCheap},
		{input: "SUPREME", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProduct(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProduct returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{input: "USD", want: CurrencyUSD},
		{input: "eur", want: CurrencyEUR},
		{input: " inr ", want: CurrencyINR},
		{input: "GBP", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCurrency returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
