package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allInHand() []*Player {
	players := make([]*Player, NumSeats)
	for seat := range players {
		players[seat] = &Player{Seat: seat}
	}
	return players
}

func newLedger(t *testing.T, stacks ...int) *PotLedger {
	t.Helper()
	l, err := NewPotLedger(stacks, 0)
	require.NoError(t, err)
	return l
}

func TestNewPotLedgerRejectsBadStacks(t *testing.T) {
	t.Parallel()

	_, err := NewPotLedger([]int{100, 100}, 0)
	assert.ErrorIs(t, err, ErrInvalidSetup)

	_, err = NewPotLedger([]int{100, -1, 100, 100}, 0)
	assert.ErrorIs(t, err, ErrInvalidSetup)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestCommitAndBankStreet(t *testing.T) {
	t.Parallel()

	l := newLedger(t, 100, 100, 100, 100)
	require.NoError(t, l.Commit(0, 10))
	require.NoError(t, l.Commit(1, 30))

	assert.Equal(t, 90, l.Stack(0))
	assert.Equal(t, 30, l.Committed(1))
	assert.Equal(t, 40, l.Total())
	assert.Equal(t, 400, l.Chips())

	l.BankStreet()
	assert.Equal(t, 40, l.Banked())
	assert.Equal(t, []int{0, 0, 0, 0}, l.CommittedAll())
	assert.Equal(t, 10, l.Contributed(0), "contributions survive banking")
	assert.Equal(t, 400, l.Chips())
}

func TestCommitInsufficientChips(t *testing.T) {
	t.Parallel()

	l := newLedger(t, 20, 100, 100, 100)
	err := l.Commit(0, 21)

	require.ErrorIs(t, err, ErrInsufficientChips)
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, 20, l.Stack(0), "failed commit must not move chips")
	assert.Equal(t, 0, l.Committed(0))

	assert.ErrorIs(t, l.Commit(4, 1), ErrContractViolation)
	assert.ErrorIs(t, l.Commit(1, -5), ErrContractViolation)
}

func TestComputeSidePots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stacks  []int
		commits []int
		folded  []int
		want    []SidePot
	}{
		{
			name:    "single level",
			stacks:  []int{100, 100, 100, 100},
			commits: []int{20, 20, 20, 20},
			want:    []SidePot{{Amount: 80, Eligible: []int{0, 1, 2, 3}, Level: 20}},
		},
		{
			name:    "two all-in caps",
			stacks:  []int{10, 10, 100, 100},
			commits: []int{10, 10, 50, 50},
			want: []SidePot{
				{Amount: 40, Eligible: []int{0, 1, 2, 3}, Level: 10},
				{Amount: 80, Eligible: []int{2, 3}, Level: 50},
			},
		},
		{
			name:    "three tiers",
			stacks:  []int{5, 20, 100, 100},
			commits: []int{5, 20, 60, 60},
			want: []SidePot{
				{Amount: 20, Eligible: []int{0, 1, 2, 3}, Level: 5},
				{Amount: 45, Eligible: []int{1, 2, 3}, Level: 20},
				{Amount: 80, Eligible: []int{2, 3}, Level: 60},
			},
		},
		{
			name:    "folded overbet merges into the pot below",
			stacks:  []int{100, 10, 10, 0},
			commits: []int{30, 10, 10, 0},
			folded:  []int{0},
			want:    []SidePot{{Amount: 50, Eligible: []int{1, 2}, Level: 30}},
		},
		{
			name:    "same eligibility merges",
			stacks:  []int{100, 100, 100, 100},
			commits: []int{20, 20, 20, 10},
			folded:  []int{3},
			want:    []SidePot{{Amount: 70, Eligible: []int{0, 1, 2}, Level: 20}},
		},
		{
			name:    "uncalled excess goes back to the bettor",
			stacks:  []int{100, 40, 100, 100},
			commits: []int{100, 40, 0, 0},
			want: []SidePot{
				{Amount: 80, Eligible: []int{0, 1}, Level: 40},
				{Amount: 60, Eligible: []int{0}, Level: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := newLedger(t, tt.stacks...)
			for seat, c := range tt.commits {
				require.NoError(t, l.Commit(seat, c))
			}
			l.BankStreet()

			players := allInHand()
			for _, seat := range tt.folded {
				players[seat].Folded = true
			}

			pots := l.ComputeSidePots(players)
			assert.Equal(t, tt.want, pots)

			total := 0
			for _, p := range pots {
				total += p.Amount
			}
			assert.Equal(t, l.Total(), total, "side pots must account for the whole pot")
		})
	}
}

func TestAwardIsIdempotent(t *testing.T) {
	t.Parallel()

	l := newLedger(t, 100, 100, 0, 0)
	require.NoError(t, l.Commit(0, 50))
	require.NoError(t, l.Commit(1, 50))
	l.BankStreet()

	status, err := l.Award(1, map[int]int{0: 100})
	require.NoError(t, err)
	assert.Equal(t, AwardApplied, status)
	assert.Equal(t, []int{150, 50, 0, 0}, l.Stacks())
	assert.Equal(t, 0, l.Total())

	for _, tx := range []uint64{1, 0} {
		status, err = l.Award(tx, map[int]int{1: 100})
		require.NoError(t, err)
		assert.Equal(t, AwardAlreadyApplied, status, "tx %d", tx)
	}
	assert.Equal(t, []int{150, 50, 0, 0}, l.Stacks(), "replayed award must not move chips")
	assert.Equal(t, uint64(1), l.LastApplied())
}

func TestAwardCarriesLastAppliedAcrossLedgers(t *testing.T) {
	t.Parallel()

	l, err := NewPotLedger([]int{100, 100, 0, 0}, 7)
	require.NoError(t, err)
	require.NoError(t, l.Commit(0, 10))

	status, err := l.Award(7, map[int]int{0: 10})
	require.NoError(t, err)
	assert.Equal(t, AwardAlreadyApplied, status)
	assert.Equal(t, 10, l.Total())

	status, err = l.Award(8, map[int]int{0: 10})
	require.NoError(t, err)
	assert.Equal(t, AwardApplied, status)
	assert.Equal(t, 100, l.Stack(0))
}

func TestAwardRejectsBadDistribution(t *testing.T) {
	t.Parallel()

	l := newLedger(t, 100, 100, 100, 100)
	require.NoError(t, l.Commit(0, 10))
	require.NoError(t, l.Commit(1, 10))

	tests := []struct {
		name string
		dist map[int]int
	}{
		{"short", map[int]int{0: 15}},
		{"over", map[int]int{0: 25}},
		{"negative", map[int]int{0: 25, 1: -5}},
		{"bad seat", map[int]int{9: 20}},
	}
	for _, tt := range tests {
		_, err := l.Award(1, tt.dist)
		assert.ErrorIs(t, err, ErrInvalidAward, tt.name)
	}
	assert.Equal(t, 20, l.Total(), "rejected awards leave the pot alone")
	assert.Equal(t, uint64(0), l.LastApplied())
}

func TestSplitPot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  int
		winners []int
		want    map[int]int
	}{
		{"single winner", 90, []int{2}, map[int]int{2: 90}},
		{"even split", 100, []int{1, 3}, map[int]int{1: 50, 3: 50}},
		{"odd chip to first seat", 101, []int{3, 1}, map[int]int{1: 51, 3: 50}},
		{"two odd chips", 23, []int{2, 0, 1}, map[int]int{0: 9, 1: 7, 2: 7}},
		{"no winners", 50, nil, map[int]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitPot(tt.amount, tt.winners))
		})
	}
}
