package billing

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{19, "Nineteen Rupees Only"},
		{42, "Forty Two Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{105, "One Hundred Five Rupees Only"},
		{999, "Nine Hundred Ninety Nine Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{15250, "Fifteen Thousand Two Hundred Fifty Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{1500000, "Fifteen Lakh Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
		{100000.50, "One Lakh Rupees and Fifty Paise Only"},
		{0.25, "Zero Rupees and Twenty Five Paise Only"},
		{62427.27, "Sixty Two Thousand Four Hundred Twenty Seven Rupees and Twenty Seven Paise Only"},
	}

	for _, tt := range tests {
		if got := AmountInWords(tt.amount); got != tt.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestAmountInWordsNegative(t *testing.T) {
	// Negative amounts never appear on a valid bill, but the renderer must
	// not panic on one
	tests := []struct {
		amount float64
		want   string
	}{
		{-1, "Minus One Rupees Only"},
		{-937573.48, "Minus Nine Lakh Thirty Seven Thousand Five Hundred Seventy Three Rupees and Forty Eight Paise Only"},
	}
	for _, tt := range tests {
		if got := AmountInWords(tt.amount); got != tt.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestAmountInWordsPaiseRounding(t *testing.T) {
	// 0.999 rounds up to a full rupee, never "Hundred Paise"
	if got := AmountInWords(0.999); got != "One Rupees Only" {
		t.Errorf("AmountInWords(0.999) = %q, want %q", got, "One Rupees Only")
	}
}
