package demo

import (
	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Board is a tic-tac-toe grid. Empty cells are "".
type Board [3][3]string

// Move names a cell.
type Move struct {
	Row, Column int
}

// GameState is the whole state of the tic-tac-toe demo.
type GameState struct {
	Board  Board
	XNext  bool
	Winner string
}

var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (b Board) winner() string {
	for _, l := range lines {
		v := b[l[0].Row][l[0].Column]
		if v != "" && v == b[l[1].Row][l[1].Column] && v == b[l[2].Row][l[2].Column] {
			return v
		}
	}
	return ""
}

// GameReducers handle the commands emitted by GameView.
var GameReducers = map[string]krow.Reducer[GameState]{
	"make-move": func(s GameState, p any) GameState {
		m, ok := p.(Move)
		if !ok || s.Winner != "" || s.Board[m.Row][m.Column] != "" {
			return s
		}
		figure := "O"
		if s.XNext {
			figure = "X"
		}
		s.Board[m.Row][m.Column] = figure
		s.XNext = !s.XNext
		s.Winner = s.Board.winner()
		return s
	},
	"reset": func(GameState, any) GameState {
		return GameState{XNext: true}
	},
}

// NewTicTacToe creates the tic-tac-toe application on s.
func NewTicTacToe(s surface.Surface, opts ...krow.Option) *krow.ReducerApp[GameState] {
	return krow.NewReducerApp(s, GameState{XNext: true}, GameView, GameReducers, opts...)
}

// GameView renders the board and the game status.
func GameView(s GameState, emit krow.Emit) *krow.VNode {
	status := "Next: O"
	switch {
	case s.Winner != "":
		status = "Winner: " + s.Winner
	case s.XNext:
		status = "Next: X"
	}

	rows := make([]*krow.VNode, 0, len(s.Board))
	for r, row := range s.Board {
		cells := make([]*krow.VNode, 0, len(row))
		for c, v := range row {
			m := Move{Row: r, Column: c}
			label := v
			if label == "" {
				label = " "
			}
			cells = append(cells, vdom.Td(
				vdom.ClassIf(v != "", "taken"),
				vdom.OnClick(func() { emit("make-move", m) }),
				label,
			))
		}
		rows = append(rows, vdom.Tr(cells))
	}

	return vdom.Fragment(
		vdom.H1("Tic Tac Toe"),
		vdom.P(vdom.Class("status"), status),
		vdom.Table(rows),
		vdom.Button(vdom.OnClick(func() { emit("reset", nil) }), "Restart"),
	)
}
