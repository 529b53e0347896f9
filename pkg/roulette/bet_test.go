package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoveredStraight(t *testing.T) {
	covered, err := Covered(Straight, []int{17})
	require.NoError(t, err)
	assert.Equal(t, []int{17}, covered)

	// zero é casa válida pra straight
	covered, err = Covered(Straight, []int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, covered)

	for _, bad := range [][]int{nil, {}, {1, 2}, {37}, {-1}} {
		_, err := Covered(Straight, bad)
		assert.ErrorIs(t, err, ErrInvalidBetShape, "numbers=%v", bad)
	}
}

func TestCoveredImplicitSets(t *testing.T) {
	cases := []struct {
		kind Kind
		size int
	}{
		{Red, 18}, {Black, 18}, {Even, 18}, {Odd, 18}, {Low, 18}, {High, 18},
		{Dozen1, 12}, {Dozen2, 12}, {Dozen3, 12},
		{Column1, 12}, {Column2, 12}, {Column3, 12},
	}
	for _, tc := range cases {
		covered, err := Covered(tc.kind, nil)
		require.NoError(t, err, "kind=%s", tc.kind)
		assert.Len(t, covered, tc.size, "kind=%s", tc.kind)
		assert.NotContains(t, covered, 0, "zero nunca entra em aposta externa")
	}
}

func TestCoveredExplicitSet(t *testing.T) {
	red := []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}

	covered, err := Covered(Red, red)
	require.NoError(t, err)
	assert.Equal(t, red, covered)

	// conjunto diferente do canônico é forma inválida
	_, err = Covered(Red, []int{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidBetShape)

	_, err = Covered(Kind("SPLIT"), nil)
	assert.ErrorIs(t, err, ErrInvalidBetShape)
}

func TestMultiplier(t *testing.T) {
	cases := map[Kind]uint64{
		Straight: 35,
		Red:      1, Black: 1, Even: 1, Odd: 1, Low: 1, High: 1,
		Dozen1: 2, Dozen2: 2, Dozen3: 2,
		Column1: 2, Column2: 2, Column3: 2,
	}
	for kind, want := range cases {
		m, err := Multiplier(kind)
		require.NoError(t, err)
		assert.Equal(t, want, m, "kind=%s", kind)
	}

	_, err := Multiplier(Kind("CORNER"))
	assert.ErrorIs(t, err, ErrInvalidBetShape)
}

func mustBet(t *testing.T, kind Kind, numbers []int, stake uint64) Bet {
	t.Helper()
	covered, err := Covered(kind, numbers)
	require.NoError(t, err)
	return Bet{BettorID: "a", BettorName: "A", Kind: kind, Covered: covered, Stake: stake}
}

func TestZeroLosesEveryOutsideBet(t *testing.T) {
	outside := []Kind{Red, Black, Even, Odd, Low, High, Dozen1, Dozen2, Dozen3, Column1, Column2, Column3}
	for _, kind := range outside {
		b := mustBet(t, kind, nil, 10)
		assert.False(t, Wins(b, 0), "kind=%s", kind)
	}

	b := mustBet(t, Straight, []int{0}, 10)
	assert.True(t, Wins(b, 0))
}

func TestWinPredicates(t *testing.T) {
	cases := []struct {
		kind    Kind
		numbers []int
		drawn   int
		wins    bool
	}{
		{Straight, []int{17}, 17, true},
		{Straight, []int{17}, 18, false},
		{Red, nil, 1, true},
		{Red, nil, 2, false},
		{Black, nil, 2, true},
		{Even, nil, 4, true},
		{Even, nil, 7, false},
		{Odd, nil, 7, true},
		{Low, nil, 18, true},
		{Low, nil, 19, false},
		{High, nil, 19, true},
		{Dozen1, nil, 12, true},
		{Dozen2, nil, 13, true},
		{Dozen2, nil, 25, false},
		{Dozen3, nil, 36, true},
		{Column1, nil, 34, true},
		{Column2, nil, 35, true},
		{Column3, nil, 36, true},
		{Column3, nil, 34, false},
	}
	for _, tc := range cases {
		b := mustBet(t, tc.kind, tc.numbers, 10)
		assert.Equal(t, tc.wins, Wins(b, tc.drawn), "kind=%s drawn=%d", tc.kind, tc.drawn)
	}
}

func TestPayoutNetProfit(t *testing.T) {
	// lucro líquido: stake já debitada na aceitação
	b := mustBet(t, Straight, []int{17}, 100)
	credit, err := Payout(b, 17)
	require.NoError(t, err)
	assert.Equal(t, uint64(3500), credit)

	credit, err = Payout(b, 4)
	require.NoError(t, err)
	assert.Zero(t, credit)

	d := mustBet(t, Dozen2, nil, 30)
	credit, err = Payout(d, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), credit)
}

func TestSettleKeepsAcceptanceOrder(t *testing.T) {
	bets := []Bet{
		mustBet(t, Red, nil, 10),            // ganha com 1
		mustBet(t, Straight, []int{5}, 20),  // perde
		mustBet(t, Odd, nil, 30),            // ganha com 1
		mustBet(t, Straight, []int{1}, 40),  // ganha com 1
		mustBet(t, Dozen3, nil, 50),         // perde
	}
	wins, err := Settle(1, bets)
	require.NoError(t, err)
	require.Len(t, wins, 3)
	assert.Equal(t, Red, wins[0].Kind)
	assert.Equal(t, uint64(10), wins[0].Payout)
	assert.Equal(t, Odd, wins[1].Kind)
	assert.Equal(t, uint64(30), wins[1].Payout)
	assert.Equal(t, Straight, wins[2].Kind)
	assert.Equal(t, uint64(1400), wins[2].Payout)
}

func TestSettleRejectsCorruptBet(t *testing.T) {
	bets := []Bet{{BettorID: "x", Kind: Kind("SPLIT"), Covered: []int{1, 2}, Stake: 5}}
	_, err := Settle(1, bets)
	assert.Error(t, err)
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, ColorGreen, ColorOf(0))
	assert.Equal(t, ColorRed, ColorOf(1))
	assert.Equal(t, ColorBlack, ColorOf(2))
	assert.Equal(t, ColorRed, ColorOf(36))
	assert.Equal(t, ColorBlack, ColorOf(35))
}
