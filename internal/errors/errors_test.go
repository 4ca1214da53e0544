package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "save slot not found",
			expected: "NOT_FOUND: save slot not found",
		},
		{
			name:     "aborted error",
			code:     errors.CodeAborted,
			message:  "unparseable turn",
			expected: "ABORTED: unparseable turn",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.FailedPrecondition("not enough skill points").
		WithMeta("skill", "Cleave").
		WithMeta("skill_points", 0)

	s.Assert().Equal("Cleave", err.Meta["skill"])
	s.Assert().Equal(0, err.Meta["skill_points"])

	wrapped := errors.WrapWithCode(err, errors.CodeAborted, "spend failed")
	s.Assert().Equal("Cleave", wrapped.Meta["skill"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk full")
	wrapped := errors.Wrap(baseErr, "failed to save game")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save game", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "save slot not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection reset")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "completion request failed")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().True(errors.IsTransient(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExistsf("%s", "test") }, errors.CodeAlreadyExists},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"DeadlineExceeded", func() *errors.Error { return errors.DeadlineExceeded("test") }, errors.CodeDeadlineExceeded},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"DataLoss", func() *errors.Error { return errors.DataLoss("test") }, errors.CodeDataLoss},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("other")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeCanceled, errors.GetCode(context.Canceled))
	s.Assert().Equal(errors.CodeDeadlineExceeded, errors.GetCode(fmt.Errorf("wrap: %w", context.DeadlineExceeded)))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestTransient() {
	s.Assert().True(errors.CodeUnavailable.Transient())
	s.Assert().True(errors.CodeDeadlineExceeded.Transient())
	s.Assert().False(errors.CodeAborted.Transient())
	s.Assert().False(errors.CodeInvalidArgument.Transient())
	s.Assert().False(errors.IsTransient(nil))
}

func (s *ErrorsTestSuite) TestFromContext() {
	s.Assert().NoError(errors.FromContext(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Assert().True(errors.IsCanceled(errors.FromContext(ctx)))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("slot missing")
	wrapped := errors.Wrap(err, "failed to load game")

	s.Assert().Equal("slot missing", errors.GetMessage(err))
	s.Assert().Equal("failed to load game", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}
