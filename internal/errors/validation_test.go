package errors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	err := errors.NewValidationBuilder().
		RequiredField("universe").
		Field("history_window", "must be at least 1").
		Build()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal("validation failed: history_window: must be at least 1; universe: is required", errors.GetMessage(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Assert().Equal([]string{"is required"}, fields["universe"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Middle-earth", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("universe", tc.value, vb)
			s.Assert().Equal(tc.shouldErr, vb.Build() != nil)
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("retry_attempts", 0, 1, 10, vb)
	s.Assert().Error(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateRange("retry_attempts", 3, 1, 10, vb)
	s.Assert().NoError(vb.Build())
}

func (s *ValidationTestSuite) TestValidateNotNegative() {
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNegative("dice_delay", -time.Millisecond, vb)
	s.Assert().Error(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateNotNegative("dice_delay", 0, vb)
	s.Assert().NoError(vb.Build())
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"file", "redis", "sqlite"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("save_backend", "redis", allowed, vb)
	s.Assert().NoError(vb.Build())

	vb = errors.NewValidationBuilder()
	errors.ValidateEnum("save_backend", "postgres", allowed, vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "must be one of: file, redis, sqlite")
}
