package game

import (
	"testing"

	"github.com/dekarrin/gamecmd/internal/command"
	"github.com/dekarrin/gamecmd/internal/direction"
	"github.com/stretchr/testify/assert"
)

func Test_Open_EasyDirection(t *testing.T) {
	testCases := []struct {
		name         string
		easyOpen     bool
		answers      []command.Arg
		expectPrompt bool
		expectTile   TileKind
	}{
		{
			name:       "only door is picked",
			easyOpen:   true,
			expectTile: DoorOpen,
		},
		{
			name:         "asks without easy open",
			answers:      []command.Arg{command.DirectionArg(direction.NE)},
			expectPrompt: true,
			expectTile:   DoorOpen,
		},
		{
			name:         "cancelled prompt opens nothing",
			answers:      []command.Arg{nil},
			expectPrompt: true,
			expectTile:   DoorClosed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := newTestGame(t, Options{EasyOpen: tc.easyOpen})
			g.answer(tc.answers...)

			g.run(t, command.New(Open))

			if tc.expectPrompt {
				assert.Equal([]string{"Direction?"}, g.fe.promptTexts())
			} else {
				assert.Empty(g.fe.prompts)
			}
			assert.Equal(tc.expectTile, g.s.Level.At(3, 1).Kind)
			assert.False(g.p.Repeating())
		})
	}
}

func Test_Open_NotADirection(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})
	g.answer(command.DirectionArg(direction.Unknown))

	err := g.run(t, command.New(Open))

	assert.ErrorIs(err, command.ErrPromptCancelled)
	assert.Equal(DoorClosed, g.s.Level.At(3, 1).Kind)
}

func Test_Tunnel_RepeatsUntilDone(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.p.Insert(command.New(Tunnel, command.DirectionArg(direction.E))))

	assert.NoError(g.p.Process(g.s.Context(), true))
	assert.Equal(Rubble, g.s.Level.At(3, 2).Kind)
	assert.True(g.p.Repeating())
	assert.Equal(99, g.p.RepeatCount())

	assert.NoError(g.p.Process(g.s.Context(), true))
	assert.Equal(Floor, g.s.Level.At(3, 2).Kind)
	assert.False(g.p.Repeating())
	assert.Equal(0, g.p.RepeatCount())

	assert.Contains(g.out.String(), "You dig in the rubble.")
	assert.Contains(g.out.String(), "You have removed the rubble.")
}

func Test_Tunnel_PermanentRock(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})
	g.s.Player.X, g.s.Player.Y = 1, 1

	assert.NoError(g.run(t, command.New(Tunnel, command.DirectionArg(direction.N))))

	assert.Contains(g.out.String(), "This seems to be permanent rock.")
	assert.False(g.p.Repeating())
}

func Test_Walk(t *testing.T) {
	testCases := []struct {
		name      string
		dir       direction.Dir
		repeats   int
		expectX   int
		expectY   int
		expectHP  int
		expectMsg string
	}{
		{
			name:     "onto floor",
			dir:      direction.S,
			expectX:  2,
			expectY:  3,
			expectHP: 20,
		},
		{
			name:     "repeated until the wall",
			dir:      direction.W,
			repeats:  5,
			expectX:  1,
			expectY:  2,
			expectHP: 20,
		},
		{
			name:      "into rubble",
			dir:       direction.E,
			expectX:   2,
			expectY:   2,
			expectHP:  20,
			expectMsg: "There is a pile of rubble in the way.",
		},
		{
			name:      "onto a hidden trap",
			dir:       direction.SE,
			repeats:   5,
			expectX:   3,
			expectY:   3,
			expectHP:  20 - trapDamage,
			expectMsg: "You found a trap!",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := newTestGame(t, Options{})
			cmd := command.New(Walk, command.DirectionArg(tc.dir))
			cmd.Repeats = tc.repeats

			assert.NoError(g.run(t, cmd))

			assert.Equal(tc.expectX, g.s.Player.X)
			assert.Equal(tc.expectY, g.s.Player.Y)
			assert.Equal(tc.expectHP, g.s.Player.HP)
			assert.False(g.p.Repeating())
			if tc.expectMsg != "" {
				assert.Contains(g.out.String(), tc.expectMsg)
			}
		})
	}
}

func Test_Search(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(Search)))

	assert.Equal(Trap, g.s.Level.At(3, 3).Kind)
	assert.Contains(g.out.String(), "You have found a trap.")
	assert.False(g.p.Repeating())
}

func Test_Search_NothingFound(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})
	g.s.Player.X, g.s.Player.Y = 7, 1

	assert.NoError(g.p.Insert(command.New(Search)))
	assert.NoError(g.p.Process(g.s.Context(), true))

	assert.True(g.p.Repeating())
	assert.Empty(g.out.String())

	for g.p.Repeating() {
		assert.NoError(g.p.Process(g.s.Context(), true))
	}
	assert.Equal("You find nothing of interest.\n", g.out.String())
}

func Test_Disarm_WorksAtTheTrap(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{EasyOpen: true})
	g.s.Player.X, g.s.Player.Y = 5, 2

	assert.NoError(g.run(t, command.New(Disarm)))

	assert.Equal(Floor, g.s.Level.At(5, 3).Kind)
	assert.Contains(g.out.String(), "You failed to disarm the trap.")
	assert.Contains(g.out.String(), "You have disarmed the trap.")
	assert.Empty(g.fe.prompts)
}

func Test_Bash_LockedDoor(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})
	g.s.Player.X, g.s.Player.Y = 5, 2

	assert.NoError(g.run(t, command.New(Bash, command.DirectionArg(direction.W))))

	assert.Equal(DoorBroken, g.s.Level.At(4, 2).Kind)
	assert.Contains(g.out.String(), "The door crashes open!")
}

func Test_Jam(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(Jam, command.DirectionArg(direction.NE))))

	assert.Equal(DoorLocked, g.s.Level.At(3, 1).Kind)
	assert.False(g.s.ItemExists(6))

	g.out.Reset()
	assert.NoError(g.run(t, command.New(Jam, command.DirectionArg(direction.NE))))
	assert.Equal("You have no spikes!\n", g.out.String())
}

func Test_Pathfind(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(Pathfind, command.PointArg{X: 1, Y: 4})))

	assert.Equal(1, g.s.Player.X)
	assert.Equal(4, g.s.Player.Y)
}

func Test_Pathfind_NoPath(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(Pathfind, command.PointArg{X: 0, Y: 0})))

	assert.Equal(2, g.s.Player.X)
	assert.Contains(g.out.String(), "There is no known path to there.")
}

func Test_Pathfinder_Dijkstra(t *testing.T) {
	assert := assert.New(t)
	lvl, _, _, err := NewLevel("corridor", 0, []string{
		"#######",
		"#@.#..#",
		"#..#..#",
		"#.....#",
		"#######",
	})
	if !assert.NoError(err) {
		return
	}
	pf := &Pathfinder{Level: lvl}

	path := pf.Dijkstra(point{1, 1}, point{5, 1})

	assert.Equal(point{1, 1}, path[0])
	assert.Equal(point{5, 1}, path[len(path)-1])
	assert.Len(path, 5)

	// cached
	assert.Equal(path, pf.Dijkstra(point{1, 1}, point{5, 1}))

	// walling off the gap changes the answer
	lvl.Set(3, 3, Tile{Kind: Granite})
	assert.Nil(pf.Dijkstra(point{1, 1}, point{5, 1}))

	assert.Equal([]point{{1, 1}}, pf.Dijkstra(point{1, 1}, point{1, 1}))
}

func Test_Rest(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(Rest)))
	assert.Equal(30, g.s.Player.HP)

	g.out.Reset()
	assert.NoError(g.run(t, command.New(Rest, command.ChoiceArg(RestAsNeeded))))
	assert.Equal("You have no need to rest.\n", g.out.String())
}

func Test_Stairs(t *testing.T) {
	assert := assert.New(t)
	g := newTestGame(t, Options{})

	assert.NoError(g.run(t, command.New(GoDown)))
	assert.Equal(1, g.s.Level.Depth)
	assert.Contains(g.out.String(), "I see no down staircase here.")

	g.s.Player.X, g.s.Player.Y = 7, 4
	assert.NoError(g.run(t, command.New(GoDown)))
	assert.Equal(2, g.s.Level.Depth)
}
