package lineup

import (
	"github.com/mcoot/courtside/internal/model"
)

// ParseAction tests

func (s *ControllerSuite) TestParseAction() {
	cases := map[string]ActionKind{
		"sub":  ActionSub,
		"SUB":  ActionSub,
		"Name": ActionName,
		"name": ActionName,
	}
	for text, want := range cases {
		got, err := ParseAction(text)
		s.Require().NoError(err, text)
		s.Equal(want, got, text)
	}
}

func (s *ControllerSuite) TestParseActionEmpty() {
	_, err := ParseAction("")
	s.ErrorIs(err, model.ErrEmptyInput)
}

func (s *ControllerSuite) TestParseActionUnknown() {
	_, err := ParseAction("swap")
	s.ErrorIs(err, model.ErrUnknownAction)
	s.Equal(`unknown action, type "sub" or "name"`, err.Error())
}

// ParsePlayerNumber tests

func (s *ControllerSuite) TestParsePlayerNumber() {
	n, err := ParsePlayerNumber("3")
	s.Require().NoError(err)
	s.Equal(model.PlayerNumber(3), n)

	n, err = ParsePlayerNumber(" #12 ")
	s.Require().NoError(err)
	s.Equal(model.PlayerNumber(12), n)
}

func (s *ControllerSuite) TestParsePlayerNumberInvalid() {
	_, err := ParsePlayerNumber("three")
	s.ErrorIs(err, model.ErrInvalidPlayerReference)

	_, err = ParsePlayerNumber("")
	s.ErrorIs(err, model.ErrEmptyInput)
}

// Perform tests

func (s *ControllerSuite) TestPerformSub() {
	l := s.createLineup()
	s.place(l.ID, 1)

	result, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 1, Command: "sub", Value: "3"})
	s.Require().NoError(err)

	s.Equal(ActionSub, result.Kind)
	s.Equal("#1 Alice → #3 Charlie", result.Message)
	s.True(result.Lineup.Court.IsOnCourt(3))
}

func (s *ControllerSuite) TestPerformLiberoSub() {
	l := s.createLineup()
	s.place(l.ID, 1, 2)
	s.random.QueueIntn(0, 1)
	s.place(l.ID, 7)

	result, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 7, Command: "Sub", Value: "#2"})
	s.Require().NoError(err)

	s.Equal("Libero #7 Libby in for #2 Bob", result.Message)
	s.Equal(model.LogKindLibero, result.Log.Kind)
}

func (s *ControllerSuite) TestPerformName() {
	l := s.createLineup()

	result, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 4, Command: "name", Value: "Dee"})
	s.Require().NoError(err)

	s.Equal(ActionName, result.Kind)
	s.Equal("Name updated: #4 Dee", result.Message)
	s.Equal("Dee", result.Lineup.Player(4).Name)
}

func (s *ControllerSuite) TestPerformEmptyValueIsNoOp() {
	l := s.createLineup()
	s.place(l.ID, 1)

	_, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 1, Command: "sub"})
	s.ErrorIs(err, model.ErrEmptyInput)

	_, err = s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 1, Command: "name"})
	s.ErrorIs(err, model.ErrEmptyInput)

	stored, _ := s.controller.GetLineup(s.ctx, l.ID, coach)
	s.Empty(stored.Log)
	s.Equal("Alice", stored.Player(1).Name)
}

func (s *ControllerSuite) TestPerformUnknownAction() {
	l := s.createLineup()

	_, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 1, Command: "jump", Value: "3"})
	s.ErrorIs(err, model.ErrUnknownAction)
}

func (s *ControllerSuite) TestPerformInvalidTarget() {
	l := s.createLineup()
	s.place(l.ID, 1)

	_, err := s.controller.Perform(s.ctx, l.ID, coach, Action{Player: 1, Command: "sub", Value: "abc"})
	s.ErrorIs(err, model.ErrInvalidPlayerReference)
}
