package command

import (
	"testing"

	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/stretchr/testify/assert"
)

func Test_NewRegistry(t *testing.T) {
	noop := HandlerFunc(func(RepeatControl, ID, Args) {})

	testCases := []struct {
		name      string
		entries   []Entry
		expectErr bool
	}{
		{
			name:    "empty",
			entries: nil,
		},
		{
			name: "valid table",
			entries: []Entry{
				{ID: 1, Verb: "walk", Handler: noop, RepeatAllowed: true},
				{ID: 2, Verb: "search", Handler: noop, RepeatAllowed: true, AutoRepeat: 10},
				{ID: Repeat, Verb: "repeat"},
			},
		},
		{
			name:      "null id",
			entries:   []Entry{{ID: Null, Verb: "nothing"}},
			expectErr: true,
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: 1, Verb: "walk"},
				{ID: 1, Verb: "run"},
			},
			expectErr: true,
		},
		{
			name:      "no verb",
			entries:   []Entry{{ID: 1}},
			expectErr: true,
		},
		{
			name:      "negative auto-repeat",
			entries:   []Entry{{ID: 1, Verb: "search", RepeatAllowed: true, AutoRepeat: -1}},
			expectErr: true,
		},
		{
			name:      "auto-repeat without repeats",
			entries:   []Entry{{ID: 1, Verb: "search", AutoRepeat: 10}},
			expectErr: true,
		},
		{
			name:      "repeat with handler",
			entries:   []Entry{{ID: Repeat, Verb: "repeat", Handler: noop}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			reg, err := NewRegistry(tc.entries)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(len(tc.entries), reg.Len())
		})
	}
}

func Test_Registry_Lookup(t *testing.T) {
	assert := assert.New(t)
	fx := newTestFixture()

	e, ok := fx.reg.Lookup(testOpen)
	assert.True(ok)
	assert.Equal("open", e.Verb)
	assert.Equal(99, e.AutoRepeat)

	_, ok = fx.reg.Lookup(ID(500))
	assert.False(ok)

	verb, ok := fx.reg.Verb(testQuaff)
	assert.True(ok)
	assert.Equal("quaff", verb)
}

func Test_Registry_Accepts(t *testing.T) {
	testCases := []struct {
		name   string
		id     ID
		slot   int
		kind   Kind
		expect bool
	}{
		{name: "accepted kind", id: testWalk, slot: 0, kind: KindDirection, expect: true},
		{name: "other kind", id: testWalk, slot: 0, kind: KindItem, expect: false},
		{name: "unused slot", id: testWalk, slot: 1, kind: KindDirection, expect: false},
		{name: "second slot", id: testQuaff, slot: 1, kind: KindTarget, expect: true},
		{name: "slot out of range", id: testQuaff, slot: MaxArgs, kind: KindTarget, expect: false},
		{name: "negative slot", id: testQuaff, slot: -1, kind: KindItem, expect: false},
		{name: "unknown id", id: ID(500), slot: 0, kind: KindItem, expect: false},
	}

	fx := newTestFixture()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := fx.reg.Accepts(tc.id, tc.slot, tc.kind)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Registry_EntriesIsCopy(t *testing.T) {
	assert := assert.New(t)
	fx := newTestFixture()

	entries := fx.reg.Entries()
	entries[0].Verb = "stroll"

	verb, _ := fx.reg.Verb(entries[0].ID)
	assert.Equal("walk", verb)
}

func Test_Args_Set(t *testing.T) {
	testCases := []struct {
		name      string
		slot      int
		value     Arg
		expectErr error
	}{
		{name: "first slot", slot: 0, value: ItemArg(3)},
		{name: "last slot", slot: MaxArgs - 1, value: StringArg("hi")},
		{name: "past the end", slot: MaxArgs, value: NumberArg(1), expectErr: ErrBadSlot},
		{name: "negative", slot: -1, value: NumberArg(1), expectErr: ErrBadSlot},
		{name: "nil value", slot: 0, value: nil, expectErr: ErrBadSlot},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			var args Args

			err := args.Set(tc.slot, tc.value)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			assert.NoError(err)
			actual, ok := args.Get(tc.slot)
			assert.True(ok)
			assert.Equal(tc.value, actual)
		})
	}
}

func Test_Args_TypedGetters(t *testing.T) {
	assert := assert.New(t)
	args := New(testQuaff, ItemArg(5), TargetArg(direction.Target)).Args

	ref, ok := args.Item(0)
	assert.True(ok)
	assert.Equal(5, ref)

	_, ok = args.Direction(1)
	assert.False(ok)

	aim, ok := args.Aim(1)
	assert.True(ok)
	assert.Equal(direction.Target, aim)

	_, ok = args.Text(0)
	assert.False(ok)

	args.Clear(0)
	_, ok = args.Item(0)
	assert.False(ok)
}

func Test_KindSet(t *testing.T) {
	assert := assert.New(t)

	ks := Kinds(KindDirection, KindTarget)

	assert.True(ks.Has(KindDirection))
	assert.True(ks.Has(KindTarget))
	assert.False(ks.Has(KindItem))
	assert.False(ks.Empty())
	assert.True(Kinds().Empty())
	assert.Equal([]Kind{KindDirection, KindTarget}, ks.Elements())
}

func Test_New_PanicsOnTooManyArgs(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		New(testInscribe, ItemArg(1), StringArg("a"), StringArg("b"))
	})
}
