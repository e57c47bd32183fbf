package pay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// CLOCK CONVERSION
// =============================================================================

func TestClock_Decimal(t *testing.T) {
	tests := []struct {
		name  string
		clock pay.Clock
		want  string
	}{
		{"whole hours", pay.Clock{Hours: 10}, "10"},
		{"half hour", pay.Clock{Hours: 12, Minutes: 30}, "12.5"},
		{"quarter hour", pay.Clock{Hours: 0, Minutes: 15}, "0.25"},
		{"zero", pay.Clock{}, "0"},
		{"negative hours clamp", pay.Clock{Hours: -3, Minutes: 30}, "0.5"},
		{"negative minutes clamp", pay.Clock{Hours: 5, Minutes: -10}, "5"},
		{"minutes past 59 clamp", pay.Clock{Hours: 5, Minutes: 75}, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.clock.Decimal()
			assert.True(t, got.Equal(dec(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestClock_IsZero(t *testing.T) {
	assert.True(t, pay.Clock{}.IsZero())
	assert.True(t, pay.Clock{Hours: -1, Minutes: 99}.IsZero(), "clamped values read as zero")
	assert.False(t, pay.Clock{Minutes: 1}.IsZero())
}

// =============================================================================
// DEFENSIVE PARSING
// =============================================================================

func TestParseDecimal_ToleratesGarbage(t *testing.T) {
	assert.True(t, pay.ParseDecimal("12.5").Equal(dec("12.5")))
	assert.True(t, pay.ParseDecimal(" 12.5 ").Equal(dec("12.5")), "whitespace trimmed")
	assert.True(t, pay.ParseDecimal("abc").IsZero())
	assert.True(t, pay.ParseDecimal("").IsZero())
	assert.True(t, pay.ParseDecimal("-4").IsZero(), "negative floors to zero")
}

func TestParseInt_DefaultsOnFailure(t *testing.T) {
	assert.Equal(t, 3, pay.ParseInt("3", 1))
	assert.Equal(t, 1, pay.ParseInt("", 1))
	assert.Equal(t, 1, pay.ParseInt("three", 1))
	assert.Equal(t, 1, pay.ParseInt("-2", 1), "negative uses the default")
	assert.Equal(t, 0, pay.ParseInt("x", 0))
}

func TestParseClock_FieldsDefaultIndependently(t *testing.T) {
	c := pay.ParseClock("12", "bogus")
	assert.Equal(t, pay.Clock{Hours: 12, Minutes: 0}, c)

	c = pay.ParseClock("", "45")
	assert.Equal(t, pay.Clock{Hours: 0, Minutes: 45}, c)
}

// =============================================================================
// BREAKDOWN ROUNDING
// =============================================================================

func TestPayBreakdown_Round_IsDisplayOnly(t *testing.T) {
	b := pay.PayBreakdown{
		BasePay:       dec("288.8019"),
		TotalGrossPay: dec("317.605"),
		HourlyValue:   dec("31.76049"),
	}

	r := b.Round()

	assert.True(t, r.BasePay.Equal(dec("288.80")))
	assert.True(t, r.TotalGrossPay.Equal(dec("317.61")))
	assert.True(t, r.HourlyValue.Equal(dec("31.76")))
	// Original untouched
	assert.True(t, b.BasePay.Equal(dec("288.8019")))
}
