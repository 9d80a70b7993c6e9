package view_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pedidos/cmd/tui/internal/view"
)

func TestFormatAmount(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{name: "Zero", input: "0", want: "R$ 0,00"},
		{name: "Cents", input: "0.5", want: "R$ 0,50"},
		{name: "Thousands", input: "1234.5", want: "R$ 1.234,50"},
		{name: "Millions", input: "1234567.891", want: "R$ 1.234.567,89"},
		{name: "Exact Hundreds", input: "100", want: "R$ 100,00"},
		{name: "Negative", input: "-30", want: "-R$ 30,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatAmount(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "02/05/2024", view.FormatDate(time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC)))
}
