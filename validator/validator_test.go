package validator

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

type chargeRequest struct {
	PlanType string `json:"planType" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidateNamesEveryMissingField(t *testing.T) {
	c := qt.New(t)
	v := New()

	err := v.Validate(&chargeRequest{})
	c.Assert(err, qt.IsNotNil)

	verrs, ok := err.(ValidationErrors)
	c.Assert(ok, qt.IsTrue)
	c.Assert(verrs, qt.HasLen, 3)

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	c.Assert(fields["PlanType"], qt.Equals, "This field is required")
	c.Assert(fields["Currency"], qt.Equals, "This field is required")
	c.Assert(fields["Amount"], qt.Equals, "This field is required")

	c.Assert(err.Error(), qt.Contains, "PlanType")
	c.Assert(err.Error(), qt.Contains, "Currency")
	c.Assert(err.Error(), qt.Contains, "Amount")
}

func TestValidateAmountMustBePositive(t *testing.T) {
	c := qt.New(t)
	v := New()

	err := v.Validate(&chargeRequest{PlanType: "monthly", Currency: "usd", Amount: -5})
	c.Assert(err, qt.IsNotNil)
	verrs, ok := err.(ValidationErrors)
	c.Assert(ok, qt.IsTrue)
	c.Assert(verrs, qt.HasLen, 1)
	c.Assert(verrs[0].Field, qt.Equals, "Amount")
	c.Assert(verrs[0].Message, qt.Equals, "Must be greater than 0")
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	c := qt.New(t)
	v := New()

	c.Assert(v.Validate(&chargeRequest{
		PlanType: "monthly",
		Currency: "USD",
		Amount:   999,
		Email:    "user@example.com",
	}), qt.IsNil)
}

func TestValidateRejectsMalformedEmail(t *testing.T) {
	c := qt.New(t)
	v := New()

	err := v.Validate(&chargeRequest{PlanType: "monthly", Currency: "usd", Amount: 1, Email: "nope"})
	c.Assert(err, qt.IsNotNil)
	verrs, ok := err.(ValidationErrors)
	c.Assert(ok, qt.IsTrue)
	c.Assert(verrs[0].Message, qt.Equals, "Invalid email format")
}
