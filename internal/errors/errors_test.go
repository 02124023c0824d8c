package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forms/internal/errors"
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
			message:  "player record not found",
			expected: "NOT_FOUND: player record not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "form locked",
			expected: "FAILED_PRECONDITION: form locked",
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
	err := errors.FailedPrecondition("gate rejected").
		WithMeta("form", "ssj2").
		WithMeta("reason", "exhausted")

	s.Assert().Equal("ssj2", err.Meta["form"])
	s.Assert().Equal("exhausted", errors.Reason(err))
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load player record")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to load player record", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Contains(wrapped.Error(), "connection refused")
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record missing").WithMeta("entity_id", "p1")
	wrapped := errors.Wrapf(baseErr, "join %s", "p1")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("join p1", wrapped.Message)
	s.Assert().Equal("p1", wrapped.Meta["entity_id"])
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.Internal("bad row").WithMeta("table", "player_records")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeNotFound, "record not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("player_records", wrapped.Meta["table"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "message"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeInternal, "message"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name string
		err  *errors.Error
		code errors.Code
	}{
		{"NotFound", errors.NotFound("x"), errors.CodeNotFound},
		{"NotFoundf", errors.NotFoundf("form %s", "x"), errors.CodeNotFound},
		{"InvalidArgument", errors.InvalidArgument("x"), errors.CodeInvalidArgument},
		{"InvalidArgumentf", errors.InvalidArgumentf("key %q", "x"), errors.CodeInvalidArgument},
		{"AlreadyExistsf", errors.AlreadyExistsf("entity %s", "x"), errors.CodeAlreadyExists},
		{"PermissionDenied", errors.PermissionDenied("x"), errors.CodePermissionDenied},
		{"FailedPrecondition", errors.FailedPrecondition("x"), errors.CodeFailedPrecondition},
		{"FailedPreconditionf", errors.FailedPreconditionf("form %s", "x"), errors.CodeFailedPrecondition},
		{"Internal", errors.Internal("x"), errors.CodeInternal},
		{"Internalf", errors.Internalf("x %d", 1), errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.code, tc.err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("record a")
	err2 := errors.NotFound("record b")
	err3 := errors.Internal("boom")

	s.Assert().ErrorIs(err1, err2)
	s.Assert().NotErrorIs(err1, err3)
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	s.Assert().True(errors.IsNotFound(errors.NotFound("x")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgument("x")))
	s.Assert().True(errors.IsAlreadyExists(errors.AlreadyExistsf("x")))
	s.Assert().True(errors.IsPermissionDenied(errors.PermissionDenied("x")))
	s.Assert().True(errors.IsFailedPrecondition(errors.FailedPrecondition("x")))
	s.Assert().True(errors.IsInternal(errors.Internal("x")))
	s.Assert().False(errors.IsNotFound(errors.Internal("x")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("x")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))

	var target *errors.Error
	s.Assert().True(errors.As(fmt.Errorf("outer: %w", errors.NotFound("x")), &target))
	s.Assert().Equal(errors.CodeNotFound, target.Code)
}

func (s *ErrorsTestSuite) TestGetMeta() {
	s.Assert().Nil(errors.GetMeta(nil))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("plain")))
	s.Assert().Equal("p1", errors.GetMeta(errors.NotFound("x").WithMeta("entity_id", "p1"))["entity_id"])
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Assert().Equal("", errors.GetMessage(nil))
	s.Assert().Equal("record missing", errors.GetMessage(errors.NotFound("record missing")))
	s.Assert().Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestReason() {
	s.Assert().Equal("", errors.Reason(nil))
	s.Assert().Equal("", errors.Reason(errors.FailedPrecondition("x")))
	s.Assert().Equal("fatigued", errors.Reason(errors.FailedPrecondition("x").WithMeta("reason", "fatigued")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code   errors.Code
		status int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodePermissionDenied, http.StatusForbidden},
		{errors.CodeFailedPrecondition, http.StatusPreconditionFailed},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.status, tc.code.HTTPStatus())
		})
	}
}
