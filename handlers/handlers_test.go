package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00"},
		{in: "5", want: "5.00"},
		{in: "1000", want: "1,000.00"},
		{in: "1234567.897", want: "1,234,567.90"},
		{in: "21000000000", want: "21,000,000,000.00"},
		{in: "-5000", want: "-5,000.00"},
		{in: "999.5", want: "999.50"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)), "in=%s", tt.in)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "potion", want: "Potion"},
		{in: "diamond", want: "Diamond"},
		{in: "Key", want: "Key"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, titleCase(tt.in), "in=%q", tt.in)
	}
}

func TestCommandAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{alias: "sodu", want: "balance"},
		{alias: "bl", want: "balance"},
		{alias: "diemdanh", want: "daily"},
		{alias: "cf", want: "coinflip"},
		{alias: "xidach", want: "blackjack"},
		{alias: "daythuyen", want: "love"},
		{alias: "fxc", want: "foxcoin"},
		{alias: "bxh", want: "leaderboard"},
		{alias: "s", want: "spin"},
		{alias: "cuahang", want: "shop"},
		{alias: "lv", want: "work"},
		{alias: "trom", want: "rob"},
		{alias: "tang", want: "give"},
		{alias: "tui", want: "inventory"},
		{alias: "taixiu", want: "taixiu"},
	}
	for _, tt := range tests {
		got, ok := commandAliases[tt.alias]
		require.True(t, ok, "alias %q missing", tt.alias)
		require.Equal(t, tt.want, got)
	}

	_, ok := commandAliases["unknown"]
	require.False(t, ok)
}

func TestDiffRoles(t *testing.T) {
	added, removed := diffRoles(
		[]string{"mod", "member"},
		[]string{"member", "vip"},
	)
	require.Equal(t, []string{"vip"}, added)
	require.Equal(t, []string{"mod"}, removed)

	added, removed = diffRoles([]string{"member"}, []string{"member"})
	require.Empty(t, added)
	require.Empty(t, removed)
}

func TestTaiXiuLabel(t *testing.T) {
	require.Equal(t, "TÀI", taiXiuLabel("tai"))
	require.Equal(t, "XỈU", taiXiuLabel("xiu"))
}

func TestLoveVerdictCoversEveryBand(t *testing.T) {
	for percent := 0; percent <= 100; percent++ {
		require.NotEmpty(t, loveVerdict(percent), "percent %d", percent)
	}
}
